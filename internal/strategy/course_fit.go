package strategy

import "github.com/yourusername/golf-edge/internal/models"

// CourseFitEstimator blends a player's record at this venue with their
// performance on similar course types
type CourseFitEstimator struct {
	HistoryWeight        float64
	SimilarWeight        float64
	DefaultCourseScore   float64
	DefaultSimilarCourse float64
}

// NewCourseFitEstimator creates a course-fit estimator with a 70/30 blend
func NewCourseFitEstimator() *CourseFitEstimator {
	return &CourseFitEstimator{
		HistoryWeight:        0.7,
		SimilarWeight:        0.3,
		DefaultCourseScore:   0.02,
		DefaultSimilarCourse: 0.5,
	}
}

// Name returns estimator name
func (e *CourseFitEstimator) Name() string {
	return "course_fit"
}

// Estimate scores course history as 1/(avgFinish+1) and blends in similar-course form
func (e *CourseFitEstimator) Estimate(tournament *models.Tournament) Distribution {
	raw := make(Distribution)
	if tournament == nil {
		return raw
	}
	courseType := tournament.GetCourseType()

	for _, player := range tournament.Players {
		similar, ok := player.CourseTypePerformance[courseType]
		if !ok {
			similar = e.DefaultSimilarCourse
		}

		courseScore := e.DefaultCourseScore
		if len(player.CourseHistory) > 0 {
			sum := 0.0
			for _, finish := range player.CourseHistory {
				sum += finish
			}
			courseScore = 1 / (sum/float64(len(player.CourseHistory)) + 1)
		}

		raw[player.Name] = courseScore*e.HistoryWeight + similar*e.SimilarWeight
	}
	return raw.Normalize()
}

// GetParameters returns estimator parameters
func (e *CourseFitEstimator) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"history_weight":         e.HistoryWeight,
		"similar_weight":         e.SimilarWeight,
		"default_course_score":   e.DefaultCourseScore,
		"default_similar_course": e.DefaultSimilarCourse,
	}
}
