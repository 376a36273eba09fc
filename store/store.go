// Package store is the bun-backed persistence layer behind the sync pass and
// the price-matching batch.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/padraicbc/classicsapi/models"
)

// Store wraps bun with the persistence operations the sync pass and price
// batch need. It satisfies syncer.Store.
type Store struct {
	db *bun.DB
}

// New creates a Store over the given database connection.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Races returns all tracked races in stable slug order.
func (s *Store) Races(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	if err := s.db.NewSelect().Model(&races).Order("slug ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return races, nil
}

// RiderByName looks up a rider by exact normalized name. Returns nil, nil
// when no rider matches. Deliberately not fuzzy: sync-time identity
// resolution compares the scraper's normalized names only.
func (s *Store) RiderByName(ctx context.Context, name string) (*models.Rider, error) {
	rider := new(models.Rider)
	err := s.db.NewSelect().Model(rider).Where("name = ?", name).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rider, nil
}

// CreateRider inserts a new canonical rider row.
func (s *Store) CreateRider(ctx context.Context, r *models.Rider) error {
	_, err := s.db.NewInsert().Model(r).Exec(ctx)
	return err
}

// UpsertStartlistEntry creates the (race, rider) row or overwrites dorsal and
// team on the existing one, keyed by the startlist_no_dupes constraint.
// xmax = 0 only on freshly inserted rows, which distinguishes create from
// update without a second query.
func (s *Store) UpsertStartlistEntry(ctx context.Context, e *models.StartlistEntry) (bool, error) {
	var inserted bool
	_, err := s.db.NewInsert().Model(e).
		On("CONFLICT (race_id, rider_id) DO UPDATE").
		Set("dorsal = EXCLUDED.dorsal").
		Set("team = EXCLUDED.team").
		Returning("(xmax = 0)").
		Exec(ctx, &inserted)
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// AllRiders returns the full rider snapshot in name order, the deterministic
// candidate ordering the matcher's tie-break relies on.
func (s *Store) AllRiders(ctx context.Context) ([]models.Rider, error) {
	var riders []models.Rider
	if err := s.db.NewSelect().Model(&riders).Order("name ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return riders, nil
}
