// Command factharbor-api exposes RunAnalysis over HTTP: POST /analyze runs
// one analysis synchronously and returns the result JSON plus report
// markdown, and GET /events?jobId=... streams the same onEvent checkpoints
// over websocket for a concurrently-watching UI. Grounded on the teacher's
// cmd/api (http.ServeMux + CORS middleware) and cmd/gateway (signal-driven
// graceful shutdown).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/robertschaub/FactHarbor-sub001/internal/app"
	"github.com/robertschaub/FactHarbor-sub001/internal/eventstream"
	"github.com/robertschaub/FactHarbor-sub001/internal/orchestrator"
)

type analyzeRequest struct {
	InputType string `json:"inputType"` // "text" | "url"
	InputValue string `json:"inputValue"`
	JobID     string `json:"jobId,omitempty"`
}

type analyzeResponse struct {
	JobID          string                    `json:"jobId"`
	Result         *orchestrator.ResultJSON  `json:"result"`
	ReportMarkdown string                    `json:"reportMarkdown"`
}

func main() {
	addr := flag.String("addr", envOr("PORT_ADDR", ":8090"), "HTTP listen address")
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx, nil)
	if err != nil {
		log.Fatalf("factharbor-api: %v", err)
	}
	defer a.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", analyzeHandler(a))
	mux.Handle("/events", eventstream.NewServer(a.Broker))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// h2c lets a local client or proxy speak cleartext HTTP/2 to this
	// service (useful once a connect-style streaming client is added for
	// /events) while still serving plain HTTP/1.1 clients, per the
	// teacher's cmd/api.
	srv := &http.Server{Addr: *addr, Handler: h2c.NewHandler(withCORS(mux), &http2.Server{})}

	go func() {
		log.Printf("factharbor-api listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("factharbor-api: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("factharbor-api: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("factharbor-api: forced shutdown: %v", err)
	}
	log.Println("factharbor-api: exited")
}

func analyzeHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		inputType := strings.ToLower(strings.TrimSpace(req.InputType))
		if inputType != string(orchestrator.InputText) && inputType != string(orchestrator.InputURL) {
			http.Error(w, "inputType must be \"text\" or \"url\"", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.InputValue) == "" {
			http.Error(w, "inputValue is required", http.StatusBadRequest)
			return
		}

		jobID := strings.TrimSpace(req.JobID)
		if jobID == "" {
			jobID = uuid.NewString()
		}
		a.BindJob(jobID, 64, nil)

		ctx, cancel := context.WithTimeout(r.Context(), 20*time.Minute)
		defer cancel()

		result, markdown, err := a.Deps.RunAnalysis(ctx, orchestrator.Input{
			InputType: orchestrator.InputType(inputType),
			Value:     req.InputValue,
			JobID:     jobID,
		})
		a.Broker.ScheduleCleanup(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(analyzeResponse{JobID: jobID, Result: result, ReportMarkdown: markdown})
	}
}

// withCORS mirrors the teacher's permissive internal-tool CORS middleware
// in cmd/api/main.go: operators terminate real origin policy in front of
// this service.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
