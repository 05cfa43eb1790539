package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intake-engine/internal/model"
	"github.com/sells-group/intake-engine/internal/orchestrator"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the intake HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng, err := initEngine()
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/api/chat/start", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Message string `json:"message"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Message == "" {
				writeError(w, http.StatusBadRequest, "message is required")
				return
			}

			res, err := eng.Router.StartSession(req.Context(), body.Message)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "could not start session")
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Post("/api/chat/message", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				SessionID string `json:"session_id"`
				Message   string `json:"message"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Message == "" {
				writeError(w, http.StatusBadRequest, "session_id and message are required")
				return
			}

			res, err := eng.Router.ContinueSession(req.Context(), body.SessionID, body.Message)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "could not process message")
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Post("/api/intake/complete", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				SessionID    string `json:"session_id"`
				Jurisdiction string `json:"jurisdiction"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.SessionID == "" {
				writeError(w, http.StatusBadRequest, "session_id is required")
				return
			}

			result, err := eng.Coordinator.Complete(req.Context(), body.SessionID, body.Jurisdiction)
			switch {
			case eris.Is(err, orchestrator.ErrUnknownSession):
				writeError(w, http.StatusNotFound, "unknown session")
				return
			case eris.Is(err, orchestrator.ErrSessionEscalated):
				writeError(w, http.StatusConflict, "session is escalated")
				return
			case err != nil:
				writeError(w, http.StatusInternalServerError, "pipeline failed")
				return
			}
			writeJSON(w, http.StatusOK, result)
		})

		r.Post("/api/session/{id}/book", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Date     string `json:"date"`
				Time     string `json:"time"`
				Attorney string `json:"attorney"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Date == "" || body.Time == "" {
				writeError(w, http.StatusBadRequest, "date and time are required")
				return
			}

			appt, err := eng.Coordinator.Book(chi.URLParam(req, "id"), model.TimeSlot{
				Date:     body.Date,
				Time:     body.Time,
				Attorney: body.Attorney,
			})
			switch {
			case eris.Is(err, orchestrator.ErrUnknownSession):
				writeError(w, http.StatusNotFound, "unknown session")
				return
			case eris.Is(err, orchestrator.ErrSessionEscalated):
				writeError(w, http.StatusConflict, "session is escalated")
				return
			case err != nil:
				writeError(w, http.StatusInternalServerError, "could not book appointment")
				return
			}
			writeJSON(w, http.StatusOK, appt)
		})

		r.Get("/api/session/{id}", func(w http.ResponseWriter, req *http.Request) {
			s, ok := eng.Store.Get(chi.URLParam(req, "id"))
			if !ok {
				writeError(w, http.StatusNotFound, "unknown session")
				return
			}
			writeJSON(w, http.StatusOK, s)
		})

		r.Get("/api/session/{id}/summary", func(w http.ResponseWriter, req *http.Request) {
			s, ok := eng.Store.Get(chi.URLParam(req, "id"))
			if !ok {
				writeError(w, http.StatusNotFound, "unknown session")
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{
				"session": orchestrator.SessionSummary(s),
				"handoff": orchestrator.HandoffSummary(s),
			})
		})

		r.Post("/api/session/{id}/reset", func(w http.ResponseWriter, req *http.Request) {
			fresh, ok := eng.Store.Reset(chi.URLParam(req, "id"))
			if !ok {
				writeError(w, http.StatusNotFound, "unknown session")
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"session_id": fresh.ID})
		})

		r.Get("/api/stats", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, eng.Store.Stats())
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
