// Package syncer drives the roster synchronization pass: scrape each tracked
// race's startlist, resolve every mention to a persisted rider, and upsert
// startlist membership, with per-race failure isolation and throttling.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padraicbc/classicsapi/models"
	"github.com/padraicbc/classicsapi/scrape"
)

// Store is the persistence surface one sync pass needs: the bun-backed
// implementation lives in the store package, tests plug in an in-memory fake.
type Store interface {
	Races(ctx context.Context) ([]models.Race, error)
	// RiderByName looks up a rider by exact normalized name, nil when absent.
	RiderByName(ctx context.Context, name string) (*models.Rider, error)
	CreateRider(ctx context.Context, r *models.Rider) error
	// UpsertStartlistEntry creates or overwrites the (race, rider) row and
	// reports whether a new row was created.
	UpsertStartlistEntry(ctx context.Context, e *models.StartlistEntry) (created bool, err error)
}

// Fetcher fetches one race's startlist page.
type Fetcher interface {
	FetchStartlist(ctx context.Context, url string) ([]scrape.Mention, error)
}

// RaceFailure records one race whose fetch or persistence failed.
type RaceFailure struct {
	Slug  string `json:"slug"`
	Error string `json:"error"`
}

// Report summarizes one sync pass. Repeated passes against an unchanged
// source converge: the second pass creates no riders and no entries.
type Report struct {
	RacesProcessed int           `json:"racesProcessed"`
	RidersCreated  int           `json:"ridersCreated"`
	EntriesCreated int           `json:"entriesCreated"`
	EntriesUpdated int           `json:"entriesUpdated"`
	Failures       []RaceFailure `json:"failures"`
}

// ErrInProgress is returned when a pass is started while another is running.
var ErrInProgress = errors.New("sync already in progress")

// Orchestrator runs one sequential pass over all tracked races. Races are
// never fetched concurrently: the source rate limit is respected via the
// inter-race throttle, and rider create-by-lookup is a read-then-write with
// no unique constraint beneath it, so concurrent passes could create
// duplicate riders. At most one pass may be in flight.
type Orchestrator struct {
	store    Store
	fetcher  Fetcher
	throttle time.Duration
	log      *zap.Logger

	running atomic.Bool
}

// New returns an Orchestrator pausing throttle between consecutive races.
func New(store Store, fetcher Fetcher, throttle time.Duration, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:    store,
		fetcher:  fetcher,
		throttle: throttle,
		log:      log,
	}
}

// SyncAll processes every tracked race in persisted order. Single-race
// failures are recorded in the report and never abort the run; the returned
// error is non-nil only when the race list itself cannot be read or a pass
// is already running.
func (o *Orchestrator) SyncAll(ctx context.Context) (*Report, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer o.running.Store(false)

	// Snapshot: races added mid-run are not picked up.
	races, err := o.store.Races(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}

	report := &Report{Failures: []RaceFailure{}}
	for i, race := range races {
		if err := o.syncRace(ctx, race, report); err != nil {
			o.log.Error("race sync failed",
				zap.String("slug", race.Slug), zap.Error(err))
			report.Failures = append(report.Failures, RaceFailure{
				Slug:  race.Slug,
				Error: err.Error(),
			})
		} else {
			report.RacesProcessed++
		}

		if i < len(races)-1 {
			o.pause(ctx)
		}
	}

	o.log.Info("sync pass complete",
		zap.Int("racesProcessed", report.RacesProcessed),
		zap.Int("ridersCreated", report.RidersCreated),
		zap.Int("entriesCreated", report.EntriesCreated),
		zap.Int("entriesUpdated", report.EntriesUpdated),
		zap.Int("failures", len(report.Failures)))
	return report, nil
}

func (o *Orchestrator) syncRace(ctx context.Context, race models.Race, report *Report) error {
	mentions, err := o.fetcher.FetchStartlist(ctx, race.SourceURL)
	if err != nil {
		return err
	}

	for _, m := range mentions {
		rider, err := o.store.RiderByName(ctx, m.Name)
		if err != nil {
			return fmt.Errorf("find rider %q: %w", m.Name, err)
		}
		if rider == nil {
			rider = &models.Rider{
				ID:    uuid.NewString(),
				Name:  m.Name,
				PcsID: m.PcsID,
			}
			if m.Team != "" {
				team := m.Team
				rider.Team = &team
			}
			if err := o.store.CreateRider(ctx, rider); err != nil {
				return fmt.Errorf("create rider %q: %w", m.Name, err)
			}
			report.RidersCreated++
		}

		created, err := o.store.UpsertStartlistEntry(ctx, &models.StartlistEntry{
			RaceID:  race.ID,
			RiderID: rider.ID,
			Dorsal:  m.Dorsal,
			Team:    m.Team,
		})
		if err != nil {
			return fmt.Errorf("upsert startlist entry for %q: %w", m.Name, err)
		}
		if created {
			report.EntriesCreated++
		} else {
			report.EntriesUpdated++
		}
	}

	return nil
}

// pause waits the throttle interval, cut short only by context cancellation.
func (o *Orchestrator) pause(ctx context.Context) {
	if o.throttle <= 0 {
		return
	}
	t := time.NewTimer(o.throttle)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
