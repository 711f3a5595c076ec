package backup

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"watchlist/core/entry"
	"watchlist/core/reconcile"
	"watchlist/core/storage"
	"watchlist/feature/watchlist"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunResult describes one completed backup.
type RunResult struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EntryCount int       `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
	Pruned     []string  `json:"pruned"`
}

// Service writes snapshot backups and restores them.
type Service struct {
	watchlist *watchlist.Service
	backend   storage.Backend
	cfg       Config
	logger    *zap.Logger

	now func() time.Time
}

// NewService creates a new backup service.
func NewService(wl *watchlist.Service, backend storage.Backend, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "backups"
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	return &Service{
		watchlist: wl,
		backend:   backend,
		cfg:       cfg,
		logger:    logger.With(zap.String("feature", "backup")),
		now:       time.Now,
	}
}

func (s *Service) name(scope entry.Scope, at time.Time) string {
	return path.Join(s.cfg.Prefix, fmt.Sprintf("watchlist_%s_%s.json", scope, at.Format("20060102_150405")))
}

// Run exports the configured scope and prunes backups beyond the retention.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	scope, err := entry.ParseScope(s.cfg.Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid backup scope: %w", err)
	}

	id := uuid.NewString()
	at := s.now().UTC()
	l := s.logger.With(zap.String("backup_id", id))

	res, err := s.watchlist.ExportTo(ctx, string(scope), s.name(scope, at))
	if err != nil {
		l.Error("Backup failed", zap.Error(err))
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	pruned, err := s.prune(ctx)
	if err != nil {
		// The backup itself succeeded; pruning is retried on the next run
		l.Warn("Backup pruning failed", zap.Error(err))
	}

	l.Info("Backup written",
		zap.String("name", res.Path),
		zap.Int("entries", res.EntryCount),
		zap.Int("pruned", len(pruned)),
	)
	return &RunResult{
		ID:         id,
		Name:       res.Path,
		EntryCount: res.EntryCount,
		CreatedAt:  res.CreatedAt,
		Pruned:     pruned,
	}, nil
}

// List returns the stored backups, newest first.
func (s *Service) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	files, err := s.backend.List(ctx, s.cfg.Prefix+"/")
	if err != nil {
		return nil, err
	}

	backups := make([]storage.ObjectInfo, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f.Name, ".json") {
			backups = append(backups, f)
		}
	}
	sort.SliceStable(backups, func(i, j int) bool {
		if !backups[i].LastModified.Equal(backups[j].LastModified) {
			return backups[i].LastModified.After(backups[j].LastModified)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Restore imports a backup. name may be given with or without the prefix.
func (s *Service) Restore(ctx context.Context, name string, opts watchlist.ImportOptions) (*reconcile.Outcome, error) {
	if name == "" || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: invalid backup name %q", watchlist.ErrInvalidInput, name)
	}
	if !strings.HasPrefix(name, s.cfg.Prefix+"/") {
		name = path.Join(s.cfg.Prefix, name)
	}

	s.logger.Info("Restoring backup", zap.String("name", name), zap.Bool("dry_run", opts.DryRun))
	return s.watchlist.ImportFrom(ctx, name, opts)
}

func (s *Service) prune(ctx context.Context) ([]string, error) {
	pruned := []string{}
	if s.cfg.Retain <= 0 {
		return pruned, nil
	}

	backups, err := s.List(ctx)
	if err != nil {
		return pruned, err
	}
	if len(backups) <= s.cfg.Retain {
		return pruned, nil
	}

	for _, b := range backups[s.cfg.Retain:] {
		if err := s.backend.Remove(ctx, b.Name); err != nil {
			return pruned, err
		}
		pruned = append(pruned, b.Name)
	}
	return pruned, nil
}
