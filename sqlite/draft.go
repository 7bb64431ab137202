package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/infotech-symposium/event-registration/draft"
)

var _ draft.Store = &DraftStore{}

// DraftStore keeps the draft in a local SQLite file, one row per draft key.
type DraftStore struct {
	db  *DB
	key string
	now func() time.Time
}

func (d *DB) Drafts() *DraftStore {
	return &DraftStore{
		db:  d,
		key: draft.Key,
		now: time.Now,
	}
}

func (s *DraftStore) Save(ctx context.Context, d draft.Draft) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	_, err := s.db.db.ExecContext(ctx, `
INSERT INTO drafts (key, full_name, college, department, email, phone, member2, member3, member4, notes, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET
	full_name = excluded.full_name,
	college = excluded.college,
	department = excluded.department,
	email = excluded.email,
	phone = excluded.phone,
	member2 = excluded.member2,
	member3 = excluded.member3,
	member4 = excluded.member4,
	notes = excluded.notes,
	updated_at = excluded.updated_at`,
		s.key, d.FullName, d.College, d.Department, d.Email, d.Phone,
		d.Member2, d.Member3, d.Member4, d.Notes,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return draft.NewTimeoutError("SaveDraft timed out")
		}
		return draft.NewFailedToWriteError("Failed to upsert draft", err)
	}

	return nil
}

func (s *DraftStore) Load(ctx context.Context) (draft.Draft, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	var d draft.Draft
	err := s.db.db.QueryRowContext(ctx, `
SELECT full_name, college, department, email, phone, member2, member3, member4, notes
FROM drafts WHERE key = ?`, s.key).Scan(
		&d.FullName, &d.College, &d.Department, &d.Email, &d.Phone,
		&d.Member2, &d.Member3, &d.Member4, &d.Notes,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return draft.Draft{}, false, nil
	case errors.Is(err, context.DeadlineExceeded):
		return draft.Draft{}, false, draft.NewTimeoutError("LoadDraft timed out")
	case err != nil:
		return draft.Draft{}, false, draft.NewFailedToFetchError("Failed to read draft", err)
	}

	return d, true, nil
}

func (s *DraftStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	_, err := s.db.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, s.key)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return draft.NewTimeoutError("ClearDraft timed out")
		}
		return draft.NewFailedToDeleteError("Failed to delete draft", err)
	}

	return nil
}
