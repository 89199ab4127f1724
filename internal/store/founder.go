package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aus-site/aus-server/internal/model"
)

// founderRow is a flat struct that maps 1:1 to the founders table columns.
// The badges_json column stores the JSON-encoded badge list.
type founderRow struct {
	ID           int64     `db:"id"`
	SingletonKey int64     `db:"singleton_key"`
	Name         string    `db:"name"`
	Title        string    `db:"title"`
	Bio          string    `db:"bio"`
	Image        string    `db:"image"`
	BadgesJSON   string    `db:"badges_json"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func founderRowFromModel(f *model.Founder) (founderRow, error) {
	badges := f.Badges
	if badges == nil {
		badges = []string{}
	}
	badgesJSON, err := json.Marshal(badges)
	if err != nil {
		return founderRow{}, fmt.Errorf("marshal badges: %w", err)
	}
	return founderRow{
		ID:           f.ID,
		SingletonKey: 1,
		Name:         f.Name,
		Title:        f.Title,
		Bio:          f.Bio,
		Image:        f.Image,
		BadgesJSON:   string(badgesJSON),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}, nil
}

func (r founderRow) toModel() (model.Founder, error) {
	badges := []string{}
	if r.BadgesJSON != "" && r.BadgesJSON != "[]" {
		if err := json.Unmarshal([]byte(r.BadgesJSON), &badges); err != nil {
			return model.Founder{}, fmt.Errorf("unmarshal badges: %w", err)
		}
	}
	return model.Founder{
		ID:        r.ID,
		Name:      r.Name,
		Title:     r.Title,
		Bio:       r.Bio,
		Image:     r.Image,
		Badges:    badges,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// UpsertFounder writes the founder profile. The first call inserts the single
// row; later calls replace its content in place, keeping the original
// created_at. On return f carries the stored record including ID and
// timestamps.
func (s *Store) UpsertFounder(ctx context.Context, f *model.Founder) error {
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	row, err := founderRowFromModel(f)
	if err != nil {
		return err
	}

	const q = `INSERT INTO founders
		(singleton_key, name, title, bio, image, badges_json, created_at, updated_at)
		VALUES
		(:singleton_key, :name, :title, :bio, :image, :badges_json, :created_at, :updated_at)
		ON CONFLICT(singleton_key) DO UPDATE SET
			name = excluded.name, title = excluded.title, bio = excluded.bio,
			image = excluded.image, badges_json = excluded.badges_json,
			updated_at = excluded.updated_at`

	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		return fmt.Errorf("upsert founder: %w", err)
	}

	// Read back so callers see the stored ID and original created_at.
	stored, err := s.GetFounder(ctx)
	if err != nil {
		return fmt.Errorf("reload founder: %w", err)
	}
	*f = *stored
	return nil
}

// GetFounder returns the founder profile, or ErrNotFound if none exists. The
// selection rule is "most recent first" so the singleton surface stays well
// defined even if the single-row constraint is ever relaxed.
func (s *Store) GetFounder(ctx context.Context) (*model.Founder, error) {
	var row founderRow
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM founders ORDER BY created_at DESC, id DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get founder: %w", err)
	}
	f, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFounderByID returns the founder profile by its row ID.
func (s *Store) GetFounderByID(ctx context.Context, id int64) (*model.Founder, error) {
	var row founderRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM founders WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get founder by id: %w", err)
	}
	f, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFounder replaces the stored fields of an existing founder record.
// The UpdatedAt field on f is refreshed automatically.
func (s *Store) UpdateFounder(ctx context.Context, f *model.Founder) error {
	f.UpdatedAt = time.Now().UTC()
	row, err := founderRowFromModel(f)
	if err != nil {
		return err
	}

	const q = `UPDATE founders SET
		name = :name, title = :title, bio = :bio, image = :image,
		badges_json = :badges_json, updated_at = :updated_at
		WHERE id = :id`

	result, err := s.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return fmt.Errorf("update founder: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update founder rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFounder removes the founder record by ID.
func (s *Store) DeleteFounder(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM founders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete founder: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete founder rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
