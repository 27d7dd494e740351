package league

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mauv0809/kicker-league/internal/docstore"
)

func (s *Service) RegisterPlayer(ctx context.Context, name string) (Player, error) {
	defer s.observe("register_player", time.Now())
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, invalid(ErrNameRequired, "please enter a player name")
	}

	player := Player{ID: uuid.NewString(), Name: name, CreatedAt: s.now()}
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		snaps, err := tx.List(collectionPlayers)
		if err != nil {
			return err
		}
		for _, existing := range decodeAll[Player](snaps) {
			if strings.EqualFold(existing.Name, name) {
				return invalid(ErrNameTaken, "a player named %q already exists", existing.Name)
			}
		}
		return tx.Set(playerPath(player.ID), player)
	})
	if err != nil {
		return Player{}, s.wrap("register player", err)
	}
	log.Info("Registered player", "playerID", player.ID, "name", player.Name)
	return player, nil
}

func (s *Service) GetPlayer(ctx context.Context, id string) (Player, error) {
	p, err := loadPlayer(ctxReader{ctx, s.store}, id)
	return p, s.wrap("get player", err)
}

func (s *Service) ListPlayers(ctx context.Context) ([]Player, error) {
	players, err := s.listPlayers(ctx)
	return players, s.wrap("list players", err)
}

// FindPlayer looks a player up by name. An exact case-insensitive match wins,
// otherwise the closest fuzzy match is used when it is unambiguous.
func (s *Service) FindPlayer(ctx context.Context, query string) (Player, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Player{}, invalid(ErrNameRequired, "player name is required")
	}
	players, err := s.listPlayers(ctx)
	if err != nil {
		return Player{}, s.wrap("find player", err)
	}

	names := make([]string, len(players))
	for i, p := range players {
		if strings.EqualFold(p.Name, query) {
			return p, nil
		}
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return Player{}, notFound("player", query)
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return Player{}, invalid(ErrAmbiguousPlayer, "%q matches both %s and %s", query, ranks[0].Target, ranks[1].Target)
	}
	return players[ranks[0].OriginalIndex], nil
}
