// Package snapshot persists the per-run config snapshot keyed by jobId
// (§6 "Persisted state"): pipelineConfig, searchConfig, and srSummary,
// captured asynchronously at Ingest time. Grounded on the teacher's
// internal/gateway/projectstore.Store dual file/Postgres backend, with the
// same New/NewPostgres/NewFromEnv constructor shapes.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Snapshot is the persisted payload for one analysis run.
type Snapshot struct {
	JobID          string         `json:"jobId"`
	PipelineConfig map[string]any `json:"pipelineConfig,omitempty"`
	SearchConfig   map[string]any `json:"searchConfig,omitempty"`
	SRSummary      map[string]any `json:"srSummary,omitempty"`
}

// Store is the config-snapshot persistence contract, file-backed by
// default with an optional Postgres backend when a DSN is available.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byJobID  map[string]Snapshot

	schemaOnce sync.Once
	schemaErr  error
}

func New(path string) *Store {
	return &Store{path: path, byJobID: make(map[string]Snapshot)}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewFromEnv mirrors the teacher's DATABASE_URL fallback: try Postgres,
// fall back to a JSON file store on any connection error or empty DSN.
func NewFromEnv(dsn, path string) *Store {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

// Save persists a snapshot, fire-and-forget from the orchestrator's
// perspective (callers run it in a goroutine; errors are swallowed the
// same way the teacher's file-store Save() does, since a missed snapshot
// must never fail the analysis itself).
func (s *Store) Save(snap Snapshot) {
	if s == nil || strings.TrimSpace(snap.JobID) == "" {
		return
	}
	if s.db != nil {
		s.saveDB(snap)
		return
	}
	s.saveFile(snap)
}

func (s *Store) Get(jobID string) (Snapshot, bool) {
	if s == nil {
		return Snapshot{}, false
	}
	if s.db != nil {
		return s.getDB(jobID)
	}
	return s.getFile(jobID)
}

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Snapshot
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			if row.JobID == "" {
				continue
			}
			s.byJobID[row.JobID] = row
		}
	})
}

func (s *Store) saveFile(snap Snapshot) {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.byJobID[snap.JobID] = snap
	rows := make([]Snapshot, 0, len(s.byJobID))
	for _, row := range s.byJobID {
		rows = append(rows, row)
	}
	s.mu.Unlock()

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) getFile(jobID string) (Snapshot, bool) {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.byJobID[jobID]
	return snap, ok
}

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS analysis_snapshots (
  job_id TEXT PRIMARY KEY,
  pipeline_config JSONB NOT NULL DEFAULT '{}',
  search_config JSONB NOT NULL DEFAULT '{}',
  sr_summary JSONB NOT NULL DEFAULT '{}'
);`)
	})
	return s.schemaErr
}

func (s *Store) saveDB(snap Snapshot) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	pipeline, _ := json.Marshal(snap.PipelineConfig)
	search, _ := json.Marshal(snap.SearchConfig)
	sr, _ := json.Marshal(snap.SRSummary)
	_, _ = s.db.Exec(`
INSERT INTO analysis_snapshots (job_id, pipeline_config, search_config, sr_summary)
VALUES ($1,$2,$3,$4)
ON CONFLICT (job_id) DO UPDATE SET
  pipeline_config=EXCLUDED.pipeline_config,
  search_config=EXCLUDED.search_config,
  sr_summary=EXCLUDED.sr_summary`,
		snap.JobID, pipeline, search, sr)
}

func (s *Store) getDB(jobID string) (Snapshot, bool) {
	if err := s.ensureSchema(); err != nil {
		return Snapshot{}, false
	}
	row := s.db.QueryRow(`SELECT job_id, pipeline_config, search_config, sr_summary
FROM analysis_snapshots WHERE job_id = $1`, jobID)
	var snap Snapshot
	var pipeline, search, sr []byte
	if err := row.Scan(&snap.JobID, &pipeline, &search, &sr); err != nil {
		return Snapshot{}, false
	}
	_ = json.Unmarshal(pipeline, &snap.PipelineConfig)
	_ = json.Unmarshal(search, &snap.SearchConfig)
	_ = json.Unmarshal(sr, &snap.SRSummary)
	return snap, true
}
