package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yourusername/golf-edge/internal/models"
)

const (
	colTournament = "tournament"
	colDate       = "date"
	colPlayer     = "player"
	colOutright   = "outright_odds"
	colTop5       = "top5_odds"
	colTop10      = "top10_odds"
	colBookmaker  = "bookmaker"
)

var requiredOddsColumns = []string{colTournament, colDate, colPlayer, colOutright}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006", "2006/01/02"}

// ParseOdds parses a price cell. A value containing '.' is decimal odds;
// otherwise it is American odds such as +400 or -200.
func ParseOdds(raw string) (decimalOdds float64, american *int, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil, ErrEmptyField
	}

	if strings.Contains(s, ".") {
		d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %q", ErrInvalidOdds, raw)
		}
		if d.LessThanOrEqual(decimal.NewFromInt(1)) {
			return 0, nil, fmt.Errorf("%w: decimal price %s must exceed 1.0", ErrInvalidOdds, d)
		}
		return d.InexactFloat64(), nil, nil
	}

	a, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %q", ErrInvalidOdds, raw)
	}
	if a > -100 && a < 100 {
		return 0, nil, fmt.Errorf("%w: american odds %d out of range", ErrInvalidOdds, a)
	}

	return models.AmericanToDecimal(a), &a, nil
}

func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrEmptyField
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// ReadOddsCSV parses an odds export with columns
// tournament,date,player,outright_odds[,top5_odds,top10_odds,bookmaker].
//
// Missing required columns and malformed rows fail the whole read; rows are
// never dropped silently. Empty top5/top10 cells are optional and skipped.
func ReadOddsCSV(r io.Reader) ([]models.OddsRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", models.ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, required := range requiredOddsColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrMissingColumn, strings.Join(missing, ", "))
	}

	validate := validator.New()
	var records []models.OddsRecord
	row := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &RecordError{Row: row, Field: "", Err: err}
		}

		cell := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		base := models.OddsRecord{
			Tournament: cell(colTournament),
			Player:     cell(colPlayer),
			Bookmaker:  cell(colBookmaker),
		}
		if base.Tournament == "" {
			return nil, &RecordError{Row: row, Field: colTournament, Err: ErrEmptyField}
		}
		if base.Player == "" {
			return nil, &RecordError{Row: row, Field: colPlayer, Err: ErrEmptyField}
		}
		date, err := parseDate(cell(colDate))
		if err != nil {
			return nil, &RecordError{Row: row, Field: colDate, Err: err}
		}
		base.Date = date

		markets := []struct {
			column   string
			market   models.MarketType
			required bool
		}{
			{colOutright, models.MarketTypeOutright, true},
			{colTop5, models.MarketTypeTop5, false},
			{colTop10, models.MarketTypeTop10, false},
		}
		for _, m := range markets {
			raw := cell(m.column)
			if raw == "" && !m.required {
				continue
			}
			price, american, err := ParseOdds(raw)
			if err != nil {
				return nil, &RecordError{Row: row, Field: m.column, Err: err}
			}
			prob, _ := models.DecimalToProbability(price)

			record := base
			record.DecimalOdds = price
			record.AmericanOdds = american
			record.ImpliedProbability = prob
			record.MarketType = m.market
			if err := validate.Struct(record); err != nil {
				return nil, &RecordError{Row: row, Field: m.column, Err: err}
			}
			records = append(records, record)
		}
	}

	return records, nil
}

// ReadOddsCSVFile opens and parses an odds CSV file
func ReadOddsCSVFile(path string) ([]models.OddsRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open odds file: %w", err)
	}
	defer f.Close()

	records, err := ReadOddsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// OddsBoard is an in-memory OddsSource over parsed records
type OddsBoard struct {
	byTournament map[string][]models.OddsRecord
	market       models.MarketType
}

// NewOddsBoard indexes records by tournament, keeping one market type
func NewOddsBoard(records []models.OddsRecord, market models.MarketType) *OddsBoard {
	board := &OddsBoard{
		byTournament: make(map[string][]models.OddsRecord),
		market:       market,
	}
	for _, r := range records {
		if r.MarketType != market {
			continue
		}
		board.byTournament[r.Tournament] = append(board.byTournament[r.Tournament], r)
	}
	return board
}

// OddsFor returns the board for one tournament
func (b *OddsBoard) OddsFor(ctx context.Context, tournament string) ([]models.OddsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.byTournament[tournament], nil
}

// Tournaments returns the tournament names on the board in sorted order
func (b *OddsBoard) Tournaments() []string {
	names := make([]string, 0, len(b.byTournament))
	for name := range b.byTournament {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
