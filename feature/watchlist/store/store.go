package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"watchlist/core/database"
	"watchlist/core/entry"
	"watchlist/core/reconcile"
	"watchlist/feature/watchlist/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stats summarizes the list.
type Stats struct {
	Total         int64                  `json:"total"`
	ByStatus      map[entry.Status]int64 `json:"by_status"`
	TotalProgress int64                  `json:"total_progress"`
	// MeanScore is the average over rated entries only.
	MeanScore float64 `json:"mean_score"`
}

// Store persists entries keyed by id. A single mutex serializes every
// operation; Exclusive extends it over a multi-step unit of work.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// New creates a store on an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the entries table and checks its columns.
func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.EntryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", models.TableName, err)
	}
	return database.VerifyColumns(db, models.TableName, models.Columns)
}

// Exclusive runs fn while holding the store lock, inside one transaction.
// fn must only use the Store it is given.
func (s *Store) Exclusive(ctx context.Context, fn func(reconcile.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&view{db: tx})
	})
}

func (s *Store) locked(ctx context.Context) (*view, func()) {
	s.mu.Lock()
	return &view{db: s.db.WithContext(ctx)}, s.mu.Unlock
}

// Get returns the entry with the given id, or nil if there is none.
func (s *Store) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	v, unlock := s.locked(ctx)
	defer unlock()
	return v.Get(ctx, id)
}

// Upsert inserts the entry or replaces the stored one with the same id.
func (s *Store) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	v, unlock := s.locked(ctx)
	defer unlock()
	return v.Upsert(ctx, e)
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	v, unlock := s.locked(ctx)
	defer unlock()
	return v.Clear(ctx)
}

// Delete removes one entry and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	v, unlock := s.locked(ctx)
	defer unlock()

	res := v.db.Delete(&models.EntryRecord{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete entry %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List returns entries newest first, optionally restricted to one status.
func (s *Store) List(ctx context.Context, status *entry.Status) ([]entry.Entry, error) {
	v, unlock := s.locked(ctx)
	defer unlock()

	q := v.db.Model(&models.EntryRecord{})
	if status != nil {
		q = q.Where("LOWER(status) = ?", strings.ToLower(string(*status)))
	}

	var records []models.EntryRecord
	if err := q.Order("updated_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return toEntries(records), nil
}

// Search returns entries whose title contains query, ignoring case.
func (s *Store) Search(ctx context.Context, query string) ([]entry.Entry, error) {
	v, unlock := s.locked(ctx)
	defer unlock()

	pattern := "%" + strings.ToLower(query) + "%"
	var records []models.EntryRecord
	err := v.db.Where("LOWER(title) LIKE ?", pattern).
		Order("title ASC").Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return toEntries(records), nil
}

// CountByStatus returns the number of entries per status.
func (s *Store) CountByStatus(ctx context.Context) (map[entry.Status]int64, error) {
	v, unlock := s.locked(ctx)
	defer unlock()
	return v.countByStatus()
}

// Aggregate returns the total progress and the mean score of rated entries.
func (s *Store) Aggregate(ctx context.Context) (progressSum int64, scoreMean float64, err error) {
	v, unlock := s.locked(ctx)
	defer unlock()
	return v.aggregate()
}

// Stats computes counts and aggregates under one lock.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	v, unlock := s.locked(ctx)
	defer unlock()

	counts, err := v.countByStatus()
	if err != nil {
		return nil, err
	}
	progress, mean, err := v.aggregate()
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByStatus: make(map[entry.Status]int64, len(entry.Statuses)), TotalProgress: progress, MeanScore: mean}
	for _, st := range entry.Statuses {
		stats.ByStatus[st] = 0
	}
	for st, n := range counts {
		stats.ByStatus[st] += n
		stats.Total += n
	}
	return stats, nil
}

// view runs queries without taking the lock. It backs both the locked
// public methods and the Store handed to Exclusive callers.
type view struct {
	db *gorm.DB
}

func (v *view) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	var rec models.EntryRecord
	err := v.db.Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
	}
	e := rec.ToEntry()
	return &e, nil
}

func (v *view) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	rec := models.FromEntry(e)
	err := v.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to upsert entry %d: %w", e.ID, err)
	}
	return rec.ToEntry(), nil
}

func (v *view) Clear(ctx context.Context) error {
	err := v.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.EntryRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

func (v *view) countByStatus() (map[entry.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := v.db.Model(&models.EntryRecord{}).
		Select("LOWER(status) AS status, COUNT(*) AS count").
		Group("LOWER(status)").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	counts := make(map[entry.Status]int64, len(rows))
	for _, r := range rows {
		counts[entry.Status(r.Status)] = r.Count
	}
	return counts, nil
}

func (v *view) aggregate() (int64, float64, error) {
	var progress struct{ Sum int64 }
	if err := v.db.Model(&models.EntryRecord{}).
		Select("COALESCE(SUM(progress), 0) AS sum").
		Scan(&progress).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to sum progress: %w", err)
	}

	var score struct{ Mean float64 }
	if err := v.db.Model(&models.EntryRecord{}).
		Select("COALESCE(AVG(score), 0) AS mean").
		Where("score > ?", 0).
		Scan(&score).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to average score: %w", err)
	}

	return progress.Sum, score.Mean, nil
}

func toEntries(records []models.EntryRecord) []entry.Entry {
	out := make([]entry.Entry, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToEntry())
	}
	return out
}
