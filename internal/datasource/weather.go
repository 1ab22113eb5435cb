package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/golf-edge/internal/metrics"
	"github.com/yourusername/golf-edge/internal/models"
)

const (
	// DefaultWeatherURL is the Open-Meteo historical archive endpoint
	DefaultWeatherURL = "https://archive-api.open-meteo.com/v1/archive"

	weatherSourceName = "open_meteo"
	tournamentDays    = 4
	kmhToMph          = 0.621371

	windyThresholdMPH     = 15.0
	veryWindyThresholdMPH = 20.0
	gustyThresholdMPH     = 25.0
	wetThresholdMM        = 10.0
)

// Wind categories
const (
	WindCalm      = "calm"
	WindWindy     = "windy"
	WindVeryWindy = "very_windy"
)

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64
	Lon float64
}

var augusta = Coordinates{Lat: 33.5031, Lon: -82.0203}

// knownVenues maps lowercase course names to coordinates. Unknown venues use Augusta.
var knownVenues = map[string]Coordinates{
	"augusta":          augusta,
	"augusta national": augusta,
	"pebble beach":     {Lat: 36.5686, Lon: -121.9495},
	"st andrews":       {Lat: 56.3398, Lon: -2.7967},
	"tpc sawgrass":     {Lat: 30.1975, Lon: -81.3947},
	"torrey pines":     {Lat: 32.9011, Lon: -117.2521},
}

// VenueCoordinates returns the coordinates of a course, falling back to Augusta
func VenueCoordinates(course string) Coordinates {
	if c, ok := knownVenues[strings.ToLower(strings.TrimSpace(course))]; ok {
		return c
	}
	return augusta
}

// WeatherDay is one day of archive weather in imperial units
type WeatherDay struct {
	Date            string
	TempMaxF        *float64
	TempMinF        *float64
	WindMPH         float64
	WindDirection   *float64
	PrecipitationMM float64
}

type openMeteoResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
		TemperatureMin   []*float64 `json:"temperature_2m_min"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
		WindSpeedMax     []*float64 `json:"windspeed_10m_max"`
		WindDirection    []*float64 `json:"winddirection_10m_dominant"`
	} `json:"daily"`
}

// WeatherClient fetches historical tournament weather from Open-Meteo
type WeatherClient struct {
	http    *RateLimitedHTTPClient
	baseURL string
	cache   *cache.Cache
	logger  *logrus.Entry
}

// NewWeatherClient creates a weather client with a TTL cache
func NewWeatherClient(httpClient *RateLimitedHTTPClient, baseURL string, ttl time.Duration, logger *logrus.Logger) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &WeatherClient{
		http:    httpClient,
		baseURL: baseURL,
		cache:   cache.New(ttl, ttl*2),
		logger:  logger.WithField("component", "weather"),
	}
}

// FetchDaily returns daily archive weather between start and end inclusive
func (c *WeatherClient) FetchDaily(ctx context.Context, coords Coordinates, start, end time.Time) ([]WeatherDay, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", coords.Lat))
	params.Set("longitude", fmt.Sprintf("%.4f", coords.Lon))
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max,winddirection_10m_dominant")
	params.Set("timezone", "America/New_York")

	resp, err := c.http.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeRateLimitExceeded, resp.Status, nil)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNotFound, resp.Status, nil)
	case resp.StatusCode >= 500:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeServerError, resp.Status, nil)
	case resp.StatusCode >= 400:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeInvalidData, resp.Status, nil)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeInvalidData, "decode response", err)
	}

	daily := payload.Daily
	days := make([]WeatherDay, 0, len(daily.Time))
	for i, date := range daily.Time {
		day := WeatherDay{
			Date:            date,
			TempMaxF:        celsiusToFahrenheit(at(daily.TemperatureMax, i)),
			TempMinF:        celsiusToFahrenheit(at(daily.TemperatureMin, i)),
			WindDirection:   at(daily.WindDirection, i),
			WindMPH:         valueOrZero(at(daily.WindSpeedMax, i)) * kmhToMph,
			PrecipitationMM: valueOrZero(at(daily.PrecipitationSum, i)),
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, ErrNoWeatherData
	}
	return days, nil
}

// TournamentWeather summarizes the four tournament days starting at start
func (c *WeatherClient) TournamentWeather(ctx context.Context, course string, start time.Time) (*models.WeatherSummary, error) {
	key := strings.ToLower(course) + "|" + start.Format("2006-01-02")
	if cached, found := c.cache.Get(key); found {
		metrics.RecordWeatherRequest("cache")
		summary := *cached.(*models.WeatherSummary)
		return &summary, nil
	}

	coords := VenueCoordinates(course)
	days, err := c.FetchDaily(ctx, coords, start, start.AddDate(0, 0, tournamentDays))
	if err != nil {
		return nil, err
	}
	metrics.RecordWeatherRequest("api")

	summary := Summarize(days)
	c.cache.Set(key, summary, cache.DefaultExpiration)
	c.logger.WithFields(logrus.Fields{
		"course":        course,
		"date":          start.Format("2006-01-02"),
		"avg_wind_mph":  summary.AvgWindMPH,
		"wind_category": summary.WindCategory,
	}).Debug("Tournament weather fetched")

	out := *summary
	return &out, nil
}

// Enrich fills in missing tournament weather. Lookup failures leave the
// tournament unchanged and are logged, never returned.
func Enrich(ctx context.Context, source WeatherSource, t *models.Tournament, logger *logrus.Entry) {
	if source == nil || t == nil || t.Weather != nil {
		return
	}
	summary, err := source.TournamentWeather(ctx, t.Course, t.Date)
	if err != nil {
		metrics.RecordWeatherRequest("fallback")
		if logger != nil {
			logger.WithError(err).WithField("tournament", t.Name).Warn("Weather lookup failed, continuing without weather")
		}
		return
	}
	t.Weather = summary
}

// Summarize aggregates the first four days into a WeatherSummary
func Summarize(days []WeatherDay) *models.WeatherSummary {
	if len(days) > tournamentDays {
		days = days[:tournamentDays]
	}
	if len(days) == 0 {
		return &models.WeatherSummary{WindCategory: WindCalm}
	}

	total := 0.0
	maxWind := 0.0
	precip := 0.0
	for _, d := range days {
		total += d.WindMPH
		maxWind = math.Max(maxWind, d.WindMPH)
		precip += d.PrecipitationMM
	}
	avg := total / float64(len(days))

	category := WindCalm
	switch {
	case avg > veryWindyThresholdMPH:
		category = WindVeryWindy
	case avg > windyThresholdMPH:
		category = WindWindy
	}

	difficulty := 0
	if avg > windyThresholdMPH {
		difficulty += 2
	}
	if maxWind > gustyThresholdMPH {
		difficulty++
	}
	if precip > wetThresholdMM {
		difficulty++
	}

	return &models.WeatherSummary{
		AvgWindMPH:           round1(avg),
		MaxWindMPH:           round1(maxWind),
		TotalPrecipitationMM: round1(precip),
		WindCategory:         category,
		DifficultyScore:      difficulty,
	}
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func celsiusToFahrenheit(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := *c*9/5 + 32
	return &f
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
