package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/sports-page-service/internal/domain/favorites"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/kvstore"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
)

// Persisted keys. Values are JSON string arrays.
const (
	KeyFavorites     = "fav_teams"
	KeyActiveLeagues = "active_leagues"
)

// ErrUnknownLeague is returned when toggling a league id outside the registry.
var ErrUnknownLeague = errors.New("unknown league")

// Source records where a value was resolved from.
type Source string

const (
	SourceOverride  Source = "override"
	SourcePersisted Source = "persisted"
	SourceDefault   Source = "default"
)

// Overrides are process-start values. A nil slice means "not given"; a non-nil empty slice is honored.
type Overrides struct {
	Leagues   []string
	Favorites []string
}

// Preferences holds the favorite teams and active leagues, writing every change through to the store.
type Preferences struct {
	mu     sync.RWMutex
	store  kvstore.Store
	logger *slog.Logger

	favs   favorites.Set
	active []string

	favSource    Source
	leagueSource Source
}

// Load resolves each value from overrides, then the store, then defaults (every league, no favorites).
// Store read failures are logged and treated as absent.
func Load(ctx context.Context, store kvstore.Store, ov Overrides, logger *slog.Logger) *Preferences {
	if store == nil {
		store = kvstore.NewMemoryStore()
	}
	p := &Preferences{store: store, logger: logger}

	switch {
	case ov.Favorites != nil:
		p.favs, p.favSource = favorites.ParseSet(ov.Favorites), SourceOverride
	default:
		if raw, ok := p.read(ctx, KeyFavorites); ok {
			p.favs, p.favSource = favorites.ParseSet(raw), SourcePersisted
		} else {
			p.favs, p.favSource = favorites.NewSet(), SourceDefault
		}
	}

	switch {
	case ov.Leagues != nil:
		p.active, p.leagueSource = ids(leagues.Filter(ov.Leagues)), SourceOverride
	default:
		if raw, ok := p.read(ctx, KeyActiveLeagues); ok {
			p.active, p.leagueSource = ids(leagues.Filter(raw)), SourcePersisted
		} else {
			p.active, p.leagueSource = leagues.IDs(), SourceDefault
		}
	}

	logging.Info(logger, "preferences loaded",
		"favorites", p.favs.Len(), "favorites_source", string(p.favSource),
		"leagues", p.active, "leagues_source", string(p.leagueSource))
	return p
}

func (p *Preferences) read(ctx context.Context, key string) ([]string, bool) {
	vals, found, err := kvstore.GetStrings(ctx, p.store, key)
	if err != nil {
		logging.Warn(p.logger, "preference read failed", "key", key, "error", err)
		return nil, false
	}
	return vals, found
}

// Favorites returns a copy of the current favorites.
func (p *Preferences) Favorites() favorites.Set {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.favs.Clone()
}

// ActiveLeagues returns the active leagues in their chosen order.
func (p *Preferences) ActiveLeagues() []leagues.League {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return leagues.Filter(p.active)
}

// ActiveIDs returns the active league ids in their chosen order.
func (p *Preferences) ActiveIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string{}, p.active...)
}

// Sources reports where favorites and leagues were resolved from at load time.
func (p *Preferences) Sources() (favSource, leagueSource Source) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.favSource, p.leagueSource
}

// ToggleFavorite adds the key if absent or removes it if present, then persists the set.
// It reports whether the key is now a favorite.
func (p *Preferences) ToggleFavorite(ctx context.Context, key favorites.Key) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.favs.Toggle(key)
	return now, p.persistFavorites(ctx)
}

// SetFavorite makes membership of key match on, persisting only when it changes.
func (p *Preferences) SetFavorite(ctx context.Context, key favorites.Key, on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.favs.Contains(key) == on {
		return nil
	}
	p.favs.Toggle(key)
	return p.persistFavorites(ctx)
}

// ToggleLeague removes an active league or appends an inactive one, then persists the list.
// It reports whether the league is now active.
func (p *Preferences) ToggleLeague(ctx context.Context, id string) (bool, error) {
	league, ok := leagues.Lookup(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownLeague, id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	now := !p.isActive(league.ID)
	p.applyLeague(league.ID, now)
	return now, p.persistLeagues(ctx)
}

// SetLeague makes the league active or inactive, persisting only when it changes.
func (p *Preferences) SetLeague(ctx context.Context, id string, on bool) error {
	league, ok := leagues.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLeague, id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isActive(league.ID) == on {
		return nil
	}
	p.applyLeague(league.ID, on)
	return p.persistLeagues(ctx)
}

func (p *Preferences) isActive(id string) bool {
	for _, a := range p.active {
		if a == id {
			return true
		}
	}
	return false
}

func (p *Preferences) applyLeague(id string, on bool) {
	if on {
		p.active = append(p.active, id)
		return
	}
	next := make([]string, 0, len(p.active))
	for _, a := range p.active {
		if a != id {
			next = append(next, a)
		}
	}
	p.active = next
}

func (p *Preferences) persistFavorites(ctx context.Context) error {
	if err := kvstore.SetStrings(ctx, p.store, KeyFavorites, p.favs.Strings()); err != nil {
		logging.Warn(p.logger, "favorites not persisted", "error", err)
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

func (p *Preferences) persistLeagues(ctx context.Context) error {
	if err := kvstore.SetStrings(ctx, p.store, KeyActiveLeagues, p.active); err != nil {
		logging.Warn(p.logger, "active leagues not persisted", "error", err)
		return fmt.Errorf("persist active leagues: %w", err)
	}
	return nil
}

func ids(ls []leagues.League) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}
