package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for verification requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		verifier := buildVerifier(buildResolver(st))

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("POST /webhook/verify", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				ID    string `json:"id"`
				Force bool   `json:"force"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}

			if req.ID == "" {
				http.Error(w, `{"error":"id is required"}`, http.StatusBadRequest)
				return
			}

			// Verify asynchronously; the webhook acknowledges receipt only.
			go func() {
				loc, err := st.GetLocation(ctx, req.ID)
				if err != nil {
					zap.L().Error("webhook verification failed",
						zap.String("location", req.ID),
						zap.Error(err),
					)
					return
				}

				verified, summary := verifier.Verify(ctx, loc, req.Force)
				if err := st.SaveLocation(ctx, loc); err != nil {
					zap.L().Error("webhook save failed",
						zap.String("location", req.ID),
						zap.Error(err),
					)
					return
				}
				zap.L().Info("webhook verification complete",
					zap.String("location", req.ID),
					zap.Bool("verified", verified),
					zap.String("summary", summary),
				)
			}()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{
				"status":   "accepted",
				"location": req.ID,
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
