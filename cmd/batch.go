package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/address-verify/internal/model"
	"github.com/sells-group/address-verify/internal/store"
)

var (
	batchLimit       int
	batchCountry     string
	batchConcurrency int
	batchForce       bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Verify pending locations from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		locs, err := st.ListPending(ctx, store.ListFilter{
			Country: batchCountry,
			Limit:   batchLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list pending locations")
		}

		verifier := buildVerifier(buildResolver(st))
		return processBatch(ctx, locs, batchConcurrency, st, func(ctx context.Context, loc *model.Location) (bool, string) {
			return verifier.Verify(ctx, loc, batchForce)
		})
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 100, "max number of locations to process")
	batchCmd.Flags().StringVar(&batchCountry, "country", "", "restrict to a single country value")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 5, "max parallel verifications")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "bypass the re-verification cooldown")
	rootCmd.AddCommand(batchCmd)
}

// verifyFunc is the callback signature for verifying one location.
type verifyFunc func(ctx context.Context, loc *model.Location) (bool, string)

// processBatch verifies locations concurrently and saves each result.
// Individual failures are logged and counted; they do not abort the batch.
func processBatch(ctx context.Context, locs []model.Location, concurrency int, st store.Store, fn verifyFunc) error {
	if len(locs) == 0 {
		zap.L().Info("no pending locations found")
		return nil
	}

	zap.L().Info("processing batch",
		zap.Int("locations", len(locs)),
		zap.Int("concurrency", concurrency),
	)

	var verified, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range locs {
		loc := &locs[i]
		g.Go(func() error {
			ok, summary := fn(gctx, loc)
			if ok {
				verified.Add(1)
			} else {
				zap.L().Debug("location not verified",
					zap.String("location", loc.ID),
					zap.String("summary", summary),
				)
			}

			if err := st.SaveLocation(gctx, loc); err != nil {
				failed.Add(1)
				zap.L().Error("save location failed",
					zap.String("location", loc.ID),
					zap.Error(err),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	zap.L().Info("batch complete",
		zap.Int("locations", len(locs)),
		zap.Int64("verified", verified.Load()),
		zap.Int64("save_failures", failed.Load()),
	)
	return nil
}
