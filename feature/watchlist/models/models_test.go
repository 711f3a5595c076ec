package models

import (
	"testing"

	"watchlist/core/entry"

	"github.com/stretchr/testify/assert"
)

func TestEntryRecord_Conversion(t *testing.T) {
	e := entry.Entry{
		ID:             42,
		Status:         entry.StatusOnHold,
		Score:          7,
		Progress:       3,
		Notes:          "paused after episode 3",
		Favorite:       true,
		StartDate:      entry.Date("2024-02-01"),
		Title:          "Example",
		ImageReference: "https://img.example/42.jpg",
	}

	rec := FromEntry(e)
	assert.Equal(t, "on_hold", rec.Status)
	assert.Nil(t, rec.EndDate)
	assert.True(t, e.Equal(rec.ToEntry()))
	assert.Equal(t, TableName, rec.TableName())
}
