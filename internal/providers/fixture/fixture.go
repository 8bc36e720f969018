package fixture

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

//go:embed data
var embedded embed.FS

// Provider serves raw feed payloads from files laid out as <league>/<feed>.json.
// A scoreboard file named scoreboard-YYYYMMDD.json takes precedence for that day.
type Provider struct {
	files fs.FS
}

// New returns a provider backed by the bundled sample data.
func New() *Provider {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return &Provider{files: sub}
}

// NewFromDir returns a provider reading from dir on disk.
func NewFromDir(dir string) *Provider {
	return &Provider{files: os.DirFS(dir)}
}

// NewFromFS returns a provider reading from an arbitrary file system.
func NewFromFS(files fs.FS) *Provider {
	return &Provider{files: files}
}

func (p *Provider) FetchScoreboard(ctx context.Context, league leagues.League, day time.Time) (feed.Scoreboard, error) {
	if err := ctx.Err(); err != nil {
		return feed.Scoreboard{}, err
	}
	data, err := p.read(league, "scoreboard-"+timeutil.FormatFeedDate(day))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = p.read(league, "scoreboard")
	}
	if err != nil {
		return feed.Scoreboard{}, err
	}
	return feed.DecodeScoreboard(data)
}

func (p *Provider) FetchStandings(ctx context.Context, league leagues.League) (feed.Standings, error) {
	if err := ctx.Err(); err != nil {
		return feed.Standings{}, err
	}
	data, err := p.read(league, "standings")
	if err != nil {
		return feed.Standings{}, err
	}
	return feed.DecodeStandings(data)
}

func (p *Provider) FetchTeams(ctx context.Context, league leagues.League) (feed.Teams, error) {
	if err := ctx.Err(); err != nil {
		return feed.Teams{}, err
	}
	data, err := p.read(league, "teams")
	if err != nil {
		return feed.Teams{}, err
	}
	return feed.DecodeTeams(data)
}

func (p *Provider) read(league leagues.League, name string) ([]byte, error) {
	data, err := fs.ReadFile(p.files, path.Join(league.ID, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("fixture: %s %s: %w", league.ID, name, err)
	}
	return data, nil
}
