package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/golf-edge/internal/models"
)

// TournamentSource supplies tournaments with their fields and situational data
type TournamentSource interface {
	// Tournaments returns tournaments dated within [start, end], oldest first.
	// Zero times leave that side of the range open.
	Tournaments(ctx context.Context, start, end time.Time) ([]models.Tournament, error)
}

// OddsSource supplies the outright odds board for a tournament
type OddsSource interface {
	OddsFor(ctx context.Context, tournament string) ([]models.OddsRecord, error)
}

// WeatherSource resolves tournament-week weather
type WeatherSource interface {
	TournamentWeather(ctx context.Context, course string, start time.Time) (*models.WeatherSummary, error)
}

// RecordError reports a malformed input row. Row is 1-based and counts the header.
type RecordError struct {
	Row   int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("row %d, field %q: %v", e.Row, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// DataSourceError represents errors from remote data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// Sentinel errors
var (
	ErrEmptyField    = errors.New("required field is empty")
	ErrInvalidOdds   = errors.New("odds cannot be parsed")
	ErrInvalidDate   = errors.New("date cannot be parsed")
	ErrCircuitOpen   = errors.New("circuit breaker open")
	ErrNoWeatherData = errors.New("no weather data returned")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
