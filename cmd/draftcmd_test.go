package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/infotech-symposium/event-registration/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, showDraft(ctx, &out, draft.NewFileStore(t.TempDir())))

		assert.Contains(t, out.String(), "No draft saved")
	})

	t.Run("saved draft", func(t *testing.T) {
		store := draft.NewFileStore(t.TempDir())
		require.NoError(t, store.Save(ctx, draft.Draft{FullName: "Asha Raman", Phone: "9876543210"}))

		var out bytes.Buffer
		require.NoError(t, showDraft(ctx, &out, store))

		assert.Contains(t, out.String(), "fullName: Asha Raman")
		assert.Contains(t, out.String(), "phone: \"9876543210\"")
		assert.NotContains(t, out.String(), "college:")
		assert.Contains(t, out.String(), "Progress: 25%")
	})
}

func TestPrintStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with a draft", func(t *testing.T) {
		store := draft.NewFileStore(t.TempDir())
		require.NoError(t, store.Save(ctx, draft.Draft{
			FullName:   "Asha Raman",
			College:    "PSG Tech",
			Department: "CSE",
			Email:      "asha@example.com",
			Phone:      "9876543210",
		}))

		var out bytes.Buffer
		require.NoError(t, printStatus(ctx, &out, store, now))

		assert.Contains(t, out.String(), "Registration closes in 4 days!")
		assert.Contains(t, out.String(), "Event date: 7 February 2026")
		assert.Contains(t, out.String(), "Fee: ₹500")
		assert.Contains(t, out.String(), "Draft progress: 63%")
	})

	t.Run("closed", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printStatus(ctx, &out, draft.NewFileStore(t.TempDir()), now.AddDate(0, 1, 0)))

		assert.Contains(t, out.String(), "Registration Closed")
		assert.Contains(t, out.String(), "No draft saved")
	})
}

func TestDraftProgress(t *testing.T) {
	assert.Equal(t, 0, draftProgress(draft.Draft{}))
	assert.Equal(t, 13, draftProgress(draft.Draft{Notes: "Veg", FullName: "Asha"}))
}
