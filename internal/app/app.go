// Package app wires C1-C12 into a runnable orchestrator.Dependencies from a
// loaded config.Config, the one assembly point both cmd/factharbor-cli and
// cmd/factharbor-api share. Grounded on insightify/internal/gateway/app's
// New()/initStores() shape: config.Load, then construct each collaborator,
// then hand back a thin façade.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/config"
	"github.com/robertschaub/FactHarbor-sub001/internal/eventstream"
	"github.com/robertschaub/FactHarbor-sub001/internal/fetchadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/orchestrator"
	"github.com/robertschaub/FactHarbor-sub001/internal/searchadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/snapshot"
	"github.com/robertschaub/FactHarbor-sub001/internal/srservice"
)

// App bundles the loaded config, the wired orchestrator dependencies, and
// the event broker both cmd binaries need.
type App struct {
	Config  *config.Config
	Deps    *orchestrator.Dependencies
	Broker  *eventstream.Broker
	client  llmadapter.LLMClient
}

// New loads config from args/env and constructs every C2-C11 external
// collaborator. Real search and fetch providers are out of scope (§1); both
// fall back to the deterministic fakes that ship in their packages.
func New(ctx context.Context, args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: building llm client: %w", err)
	}

	tiering := llmgateway.DefaultTiering(cfg.LLMTiering)
	gw := llmgateway.New(client, tiering, nil, cfg.Deterministic)

	broker := eventstream.NewBroker()

	snapStore := snapshot.NewFromEnv(cfg.DatabaseURL, filepath.Join("tmp", "factharbor_snapshots.json"))

	deps := &orchestrator.Dependencies{
		Gateway:        gw,
		SearchProvider: searchadapter.NewFakeProvider(),
		Fetcher:        fetchadapter.NewFakeFetcher(),
		SRService:      srservice.New(srservice.NewFakeBackend(), 4096),
		SnapshotStore:  snapStore,
		Config:         cfg,
	}

	return &App{Config: cfg, Deps: deps, Broker: broker, client: client}, nil
}

// BindJob points Deps.OnEvent at the broker channel allocated for jobID, so
// every RunAnalysis checkpoint is visible to both the caller's own callback
// and any attached websocket watcher (§6 onEvent, §5 telemetry ordering).
func (a *App) BindJob(jobID string, size int, extra func(message string, progress int)) {
	a.Broker.Allocate(jobID, size)
	a.Deps.OnEvent = func(message string, progress int) {
		a.Broker.Publish(jobID, message, progress)
		if extra != nil {
			extra(message, progress)
		}
	}
}

// Close releases the underlying LLM client's resources (connections,
// file handles), mirroring llmClient.LLMClient.Close in the teacher.
func (a *App) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func newLLMClient(ctx context.Context, cfg *config.Config) (llmadapter.LLMClient, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "", "fake":
		return llmadapter.NewFakeClient(32000), nil
	case "gemini":
		model := cfg.UnderstandModel
		if model == "" {
			model = "gemini-2.5-flash"
		}
		return llmadapter.NewGeminiClient(ctx, model, 1_000_000)
	case "groq":
		model := cfg.UnderstandModel
		if model == "" {
			model = "llama-3.3-70b-versatile"
		}
		return llmadapter.NewGroqClient("", model, 32000), nil
	case "openai":
		model := cfg.UnderstandModel
		if model == "" {
			model = "gpt-4o-mini"
		}
		return llmadapter.NewOpenAIClient("", model, 128000), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
