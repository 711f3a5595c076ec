package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"watchlist/core/entry"
	"watchlist/core/reconcile"
	"watchlist/core/snapshot"
	"watchlist/core/storage"
	"watchlist/feature/watchlist/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidInput wraps bad user supplied parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// Options configure what the service writes into exported snapshots.
type Options struct {
	AppVersion string
	DeviceName string
}

// ImportOptions select the reconciliation policy of an import.
type ImportOptions struct {
	Strategy   string
	Resolution string
	Scope      string
	DryRun     bool
}

// ExportResult describes a snapshot written to the backend.
type ExportResult struct {
	Path       string      `json:"path"`
	EntryCount int         `json:"entry_count"`
	Scope      entry.Scope `json:"scope"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Service handles watchlist operations.
type Service struct {
	store   *store.Store
	engine  *reconcile.Engine
	backend storage.Backend
	logger  *zap.Logger
	opts    Options

	now   func() time.Time
	stats singleflight.Group
}

// NewService creates a new watchlist service.
func NewService(st *store.Store, backend storage.Backend, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   st,
		engine:  reconcile.NewEngine(st, logger),
		backend: backend,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// DefaultExportName is the file name used when an export is not given one.
func DefaultExportName(scope entry.Scope, at time.Time) string {
	return fmt.Sprintf("watchlist_export_%s_%s.json", scope, at.Format("20060102_150405"))
}

// Export serializes the entries within scope.
func (s *Service) Export(ctx context.Context, scope string) (*snapshot.Snapshot, []byte, error) {
	sc, err := entry.ParseScope(scope)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.store.List(ctx, sc.Status())
	if err != nil {
		return nil, nil, err
	}

	meta := snapshot.NewMetadata(s.opts.AppVersion, s.opts.DeviceName, sc)
	snap := snapshot.New(entries, meta, s.now().UTC().Truncate(time.Second))
	data, err := snap.Serialize()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	s.logger.Debug("Snapshot exported",
		zap.String("scope", string(sc)),
		zap.Int("entries", len(entries)),
	)
	return snap, data, nil
}

// ExportTo exports scope and writes the snapshot to the backend.
// An empty name selects DefaultExportName.
func (s *Service) ExportTo(ctx context.Context, scope, name string) (*ExportResult, error) {
	snap, data, err := s.Export(ctx, scope)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = DefaultExportName(snap.Metadata.ExportScope, snap.CreatedAt)
	}
	if err := s.backend.WriteBytes(ctx, name, data); err != nil {
		return nil, err
	}

	s.logger.Info("Export written",
		zap.String("path", name),
		zap.Int("entries", snap.Metadata.EntryCount),
	)
	return &ExportResult{
		Path:       name,
		EntryCount: snap.Metadata.EntryCount,
		Scope:      snap.Metadata.ExportScope,
		CreatedAt:  snap.CreatedAt,
	}, nil
}

// Import parses a snapshot and reconciles it into the store. Parse and policy
// errors are returned before the store is touched. With DryRun set the
// returned outcome is the predicted one and nothing is written.
func (s *Service) Import(ctx context.Context, data []byte, opts ImportOptions) (*reconcile.Outcome, error) {
	plan, err := s.run(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	return plan.Outcome, nil
}

// Preview returns the per-entry actions an import would take.
func (s *Service) Preview(ctx context.Context, data []byte, opts ImportOptions) (*reconcile.Plan, error) {
	opts.DryRun = true
	return s.run(ctx, data, opts)
}

func (s *Service) run(ctx context.Context, data []byte, opts ImportOptions) (*reconcile.Plan, error) {
	snap, err := snapshot.Parse(data)
	if err != nil {
		return nil, err
	}

	policy, err := reconcile.ParsePolicy(opts.Strategy, opts.Resolution, opts.Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	l := s.logger.With(
		zap.String("format_version", snap.FormatVersion),
		zap.String("strategy", string(policy.Strategy)),
		zap.String("resolution", string(policy.Resolution)),
		zap.String("scope", string(policy.Scope)),
	)

	var plan *reconcile.Plan
	if opts.DryRun {
		plan, err = s.engine.Plan(ctx, snap.Entries, policy)
	} else {
		var out *reconcile.Outcome
		out, err = s.engine.Reconcile(ctx, snap.Entries, policy)
		plan = &reconcile.Plan{Outcome: out}
	}
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		return nil, err
	}

	out := plan.Outcome
	l.Info("Import finished",
		zap.Bool("dry_run", out.DryRun),
		zap.Int("total", out.Total),
		zap.Int("imported", out.Imported),
		zap.Int("updated", out.Updated),
		zap.Int("skipped", out.Skipped),
		zap.Int("conflicts", out.Conflicts),
		zap.Int("errors", len(out.Errors)),
	)
	return plan, nil
}

// ImportFrom reads a snapshot from the backend and imports it.
func (s *Service) ImportFrom(ctx context.Context, name string, opts ImportOptions) (*reconcile.Outcome, error) {
	data, err := s.backend.ReadBytes(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, data, opts)
}

// List returns entries, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]entry.Entry, error) {
	if strings.TrimSpace(status) == "" {
		return s.store.List(ctx, nil)
	}
	st, err := entry.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.store.List(ctx, &st)
}

// Get returns one entry or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// Upsert validates and stores an entry.
func (s *Service) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	if err := e.Validate(); err != nil {
		return entry.Entry{}, err
	}
	return s.store.Upsert(ctx, e)
}

// Delete removes an entry or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Search matches titles case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]entry.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}
	return s.store.Search(ctx, query)
}

// Stats returns list statistics. Concurrent callers share one computation.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	v, err, _ := s.stats.Do("stats", func() (any, error) {
		return s.store.Stats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Stats), nil
}
