package models

import "time"

// DefaultCourseType is used when a tournament does not declare one
const DefaultCourseType = "standard"

// WeatherSummary aggregates tournament-day weather
type WeatherSummary struct {
	AvgWindMPH           float64 `yaml:"avg_wind_mph" json:"avg_wind_mph"`
	MaxWindMPH           float64 `yaml:"max_wind_mph" json:"max_wind_mph"`
	TotalPrecipitationMM float64 `yaml:"total_precipitation_mm" json:"total_precipitation_mm"`
	WindCategory         string  `yaml:"wind_category" json:"wind_category"`
	DifficultyScore      int     `yaml:"difficulty_score" json:"difficulty_score"`
}

// PlayerProfile carries the situational attributes estimators read
type PlayerProfile struct {
	Name                  string             `yaml:"name" json:"name"`
	BaseProbability       *float64           `yaml:"base_probability" json:"base_probability,omitempty"`
	WindPerformance       float64            `yaml:"wind_performance" json:"wind_performance"`
	RecentFinishes        []int              `yaml:"recent_finishes" json:"recent_finishes,omitempty"`
	CourseHistory         []float64          `yaml:"course_history" json:"course_history,omitempty"`
	CourseTypePerformance map[string]float64 `yaml:"course_type_performance" json:"course_type_performance,omitempty"`
}

// Tournament is one event with its field, conditions and (for backtests) its winner
type Tournament struct {
	Name       string          `yaml:"name" json:"name"`
	Date       time.Time       `yaml:"date" json:"date"`
	Course     string          `yaml:"course" json:"course"`
	CourseType string          `yaml:"course_type" json:"course_type"`
	Weather    *WeatherSummary `yaml:"weather" json:"weather,omitempty"`
	Players    []PlayerProfile `yaml:"players" json:"players"`
	Winner     string          `yaml:"winner" json:"winner,omitempty"`
}

// GetCourseType returns the declared course type or the default
func (t *Tournament) GetCourseType() string {
	if t.CourseType == "" {
		return DefaultCourseType
	}
	return t.CourseType
}

// WindMPH returns the average tournament wind, 0 when unknown
func (t *Tournament) WindMPH() float64 {
	if t.Weather == nil {
		return 0
	}
	return t.Weather.AvgWindMPH
}

// HasResult reports whether the tournament can be settled
func (t *Tournament) HasResult() bool {
	return t.Winner != ""
}
