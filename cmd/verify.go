package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/address-verify/internal/model"
)

var (
	verifyStreet1    string
	verifyStreet2    string
	verifyCity       string
	verifyState      string
	verifyPostalCode string
	verifyCountry    string
	verifyForce      bool
)

// verifyReport is the YAML output of a one-off verification.
type verifyReport struct {
	Verified bool            `yaml:"verified"`
	Summary  string          `yaml:"summary"`
	Location *model.Location `yaml:"location"`
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a single address from flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := &model.Location{
			Street1:    verifyStreet1,
			Street2:    verifyStreet2,
			City:       verifyCity,
			State:      verifyState,
			PostalCode: verifyPostalCode,
			Country:    verifyCountry,
		}

		verifier := buildVerifier(buildResolver(nil))
		verified, summary := verifier.Verify(cmd.Context(), loc, verifyForce)

		out, err := yaml.Marshal(verifyReport{
			Verified: verified,
			Summary:  summary,
			Location: loc,
		})
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyStreet1, "street1", "", "street line 1")
	verifyCmd.Flags().StringVar(&verifyStreet2, "street2", "", "street line 2")
	verifyCmd.Flags().StringVar(&verifyCity, "city", "", "city")
	verifyCmd.Flags().StringVar(&verifyState, "state", "", "state or administrative area")
	verifyCmd.Flags().StringVar(&verifyPostalCode, "postal-code", "", "postal code")
	verifyCmd.Flags().StringVar(&verifyCountry, "country", "", "country (empty may default to US per config)")
	verifyCmd.Flags().BoolVar(&verifyForce, "force", false, "bypass the re-verification cooldown")
	rootCmd.AddCommand(verifyCmd)
}
