package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/golf-edge/internal/models"
)

type tournamentFile struct {
	Tournaments []models.Tournament `yaml:"tournaments"`
}

// TournamentFile is a TournamentSource backed by a YAML fixture
type TournamentFile struct {
	tournaments []models.Tournament
}

// ReadTournaments decodes a YAML document with a top-level tournaments list
func ReadTournaments(r io.Reader) (*TournamentFile, error) {
	var doc tournamentFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode tournaments: %w", err)
	}

	for i, t := range doc.Tournaments {
		if t.Name == "" {
			return nil, &RecordError{Row: i + 1, Field: "name", Err: ErrEmptyField}
		}
		if t.Date.IsZero() {
			return nil, &RecordError{Row: i + 1, Field: "date", Err: ErrEmptyField}
		}
		for _, p := range t.Players {
			if p.Name == "" {
				return nil, &RecordError{Row: i + 1, Field: "players.name", Err: ErrEmptyField}
			}
		}
	}

	sort.SliceStable(doc.Tournaments, func(i, j int) bool {
		return doc.Tournaments[i].Date.Before(doc.Tournaments[j].Date)
	})
	return &TournamentFile{tournaments: doc.Tournaments}, nil
}

// LoadTournamentFile reads a YAML tournament fixture from disk
func LoadTournamentFile(path string) (*TournamentFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tournament file: %w", err)
	}
	defer f.Close()
	return ReadTournaments(f)
}

// Tournaments returns copies of tournaments dated within [start, end]
func (f *TournamentFile) Tournaments(ctx context.Context, start, end time.Time) ([]models.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		if !start.IsZero() && t.Date.Before(start) {
			continue
		}
		if !end.IsZero() && t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Len returns the number of tournaments loaded
func (f *TournamentFile) Len() int {
	return len(f.tournaments)
}
