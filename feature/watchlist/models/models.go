package models

import (
	"time"

	"watchlist/core/entry"
)

// TableName is the table backing the watchlist store.
const TableName = "watchlist_entries"

// Columns are the columns the store reads and writes.
var Columns = []string{
	"id", "status", "score", "progress", "notes", "favorite",
	"start_date", "end_date", "title", "image_reference",
	"created_at", "updated_at",
}

// EntryRecord is the persisted form of an entry. The id comes from the
// metadata provider and is never generated by the database.
type EntryRecord struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Status         string    `gorm:"column:status;type:varchar(16);not null;index"`
	Score          int       `gorm:"column:score;not null"`
	Progress       int       `gorm:"column:progress;not null"`
	Notes          string    `gorm:"column:notes;type:text"`
	Favorite       bool      `gorm:"column:favorite;not null"`
	StartDate      *string   `gorm:"column:start_date;type:varchar(10)"`
	EndDate        *string   `gorm:"column:end_date;type:varchar(10)"`
	Title          string    `gorm:"column:title;type:varchar(512)"`
	ImageReference string    `gorm:"column:image_reference;type:varchar(1024)"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;index"`
}

func (EntryRecord) TableName() string {
	return TableName
}

// FromEntry converts a domain entry into a record.
func FromEntry(e entry.Entry) EntryRecord {
	return EntryRecord{
		ID:             e.ID,
		Status:         string(e.Status),
		Score:          e.Score,
		Progress:       e.Progress,
		Notes:          e.Notes,
		Favorite:       e.Favorite,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Title:          e.Title,
		ImageReference: e.ImageReference,
	}
}

// ToEntry converts the record back into a domain entry.
func (r EntryRecord) ToEntry() entry.Entry {
	return entry.Entry{
		ID:             r.ID,
		Status:         entry.Status(r.Status),
		Score:          r.Score,
		Progress:       r.Progress,
		Notes:          r.Notes,
		Favorite:       r.Favorite,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Title:          r.Title,
		ImageReference: r.ImageReference,
	}
}
