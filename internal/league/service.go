package league

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/docstore"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/pubsub"
	"golang.org/x/sync/singleflight"
)

var _ League = (*Service)(nil)

// Service runs league operations against the document store. Every
// mutation reads fresh state and writes its result in one transaction.
type Service struct {
	store   docstore.Store
	rules   Rules
	metrics metrics.Metrics
	events  pubsub.PubSubClient
	now     func() time.Time

	// advancing collapses concurrent advancement requests per tournament.
	advancing singleflight.Group
}

// New creates a league Service.
func New(store docstore.Store, rules Rules, metrics metrics.Metrics, events pubsub.PubSubClient) *Service {
	return &Service{
		store:   store,
		rules:   rules,
		metrics: metrics,
		events:  events,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func playerPath(id string) string     { return collectionPlayers + "/" + id }
func matchPath(id string) string      { return collectionMatches + "/" + id }
func tournamentPath(id string) string { return collectionTournaments + "/" + id }

// wrap passes validation and not-found errors through and marks anything
// else as a retryable storage failure.
func (s *Service) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || errors.Is(err, ErrNotFound) {
		return err
	}
	s.metrics.IncStorageFailures()
	log.Error("Storage operation failed", "operation", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func (s *Service) observe(op string, start time.Time) {
	s.metrics.ObserveOperationDuration(op, time.Since(start).Seconds())
}

// publish sends an event after a commit. Failures are logged only, the
// stored state is already authoritative.
func (s *Service) publish(topic pubsub.EventType, data any) {
	if err := s.events.SendMessage(topic, data); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}

type reader interface {
	Get(path string) (docstore.Snapshot, error)
}

// ctxReader adapts the store to the reader interface outside transactions.
type ctxReader struct {
	ctx   context.Context
	store docstore.Store
}

func (r ctxReader) Get(path string) (docstore.Snapshot, error) {
	return r.store.Get(r.ctx, path)
}

func load[T any](r reader, kind, id string) (T, error) {
	var out T
	snap, err := r.Get(kind + "/" + id)
	if err != nil {
		return out, err
	}
	if !snap.Exists() {
		return out, notFound(kind, id)
	}
	if err := snap.DataTo(&out); err != nil {
		return out, err
	}
	return out, nil
}

func loadPlayer(r reader, id string) (Player, error) {
	p, err := load[Player](r, collectionPlayers, id)
	if err == nil && p.ID == "" {
		p.ID = id
	}
	return p, err
}

func loadMatch(r reader, id string) (Match, error) {
	m, err := load[Match](r, collectionMatches, id)
	if err == nil && m.ID == "" {
		m.ID = id
	}
	return m, err
}

func loadTournament(r reader, id string) (Tournament, error) {
	t, err := load[Tournament](r, collectionTournaments, id)
	if err == nil && t.ID == "" {
		t.ID = id
	}
	return t, err
}

func decodeAll[T any](snaps []docstore.Snapshot) []T {
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var v T
		if err := snap.DataTo(&v); err != nil {
			log.Error("Skipping undecodable document", "path", snap.Path, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *Service) listPlayers(ctx context.Context) ([]Player, error) {
	snaps, err := s.store.List(ctx, collectionPlayers)
	if err != nil {
		return nil, err
	}
	players := decodeAll[Player](snaps)
	sort.SliceStable(players, func(i, j int) bool {
		if !players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CreatedAt.Before(players[j].CreatedAt)
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

func (s *Service) listMatches(ctx context.Context) ([]Match, error) {
	snaps, err := s.store.List(ctx, collectionMatches)
	if err != nil {
		return nil, err
	}
	matches := decodeAll[Match](snaps)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

func (s *Service) listTournaments(ctx context.Context) ([]Tournament, error) {
	snaps, err := s.store.List(ctx, collectionTournaments)
	if err != nil {
		return nil, err
	}
	tournaments := decodeAll[Tournament](snaps)
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].CreatedAt.Before(tournaments[j].CreatedAt)
	})
	return tournaments, nil
}
