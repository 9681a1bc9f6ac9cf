package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SharkLava/gwern.net/pkg/document"
	snerrors "github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/layout"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// newServeCmd creates the serve command exposing the engine over HTTP.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

POST a document geometry snapshot (JSON) to /layout and receive the run
report with every sidenote's final offset. Each request is an independent
layout session; nothing is persisted between requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServeCmd(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8480)")

	return cmd
}

func runServeCmd(ctx context.Context, cfg Config) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	logger.Info("serving layout engine", "addr", cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newRouter builds the chi router for the layout service.
func newRouter(cfg Config, logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/layout", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, 4<<20))
		if err != nil {
			writeHTTPError(w, http.StatusRequestEntityTooLarge, err)
			return
		}

		snap, err := document.ParseSnapshot(body)
		if err != nil {
			writeHTTPError(w, http.StatusBadRequest, err)
			return
		}

		opts := layout.DefaultOptions()
		opts.Logger = logger
		opts.Spacing = cfg.Spacing
		if snap.Spacing > 0 {
			opts.Spacing = snap.Spacing
		}

		driver, _, err := layout.NewFromSnapshot(snap, opts)
		if err != nil {
			writeHTTPError(w, http.StatusBadRequest, err)
			return
		}

		report, err := driver.RunLayout(req.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, err)
			return
		}

		logger.Debug("layout request",
			"status", reportStatus(report),
			"anchors", len(snap.Document.Anchors),
			"run", report.RunID)
		writeJSON(w, http.StatusOK, report)
	})

	return r
}

// httpError is the JSON error body for the layout service.
type httpError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeHTTPError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, httpError{
		Code:    string(snerrors.GetCode(err)),
		Message: snerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// reportStatus maps a run report to an HTTP-ish status string for logs.
func reportStatus(r sidenote.RunReport) string {
	switch {
	case r.Skipped:
		return sidenote.OutcomeSkipped
	case r.Success():
		return sidenote.OutcomeSuccess
	default:
		return sidenote.OutcomeOverflow
	}
}
