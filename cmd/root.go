package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/address-verify/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "address-verify",
	Short: "Address standardization and geocoding via SmartyStreets",
	Long:  "Standardizes and geocodes postal addresses through the SmartyStreets verification APIs, writing normalized fields and geocoding metadata back onto location records.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
