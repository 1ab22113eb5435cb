package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/golf-edge/internal/models"
)

type fixedEstimator struct {
	name string
	dist Distribution
}

func (f fixedEstimator) Name() string { return f.name }

func (f fixedEstimator) Estimate(*models.Tournament) Distribution { return f.dist.Normalize() }

func TestCombinedEstimatorValidation(t *testing.T) {
	a := fixedEstimator{name: "a", dist: Distribution{"x": 1}}
	b := fixedEstimator{name: "b", dist: Distribution{"x": 1}}

	_, err := NewCombinedEstimator(nil, nil)
	assert.Error(t, err)

	_, err = NewCombinedEstimator([]Estimator{a, b}, []float64{1})
	assert.Error(t, err)

	_, err = NewCombinedEstimator([]Estimator{a, b}, []float64{0.5, 0.6})
	assert.Error(t, err)

	_, err = NewCombinedEstimator([]Estimator{a, b}, []float64{1.5, -0.5})
	assert.Error(t, err)

	c, err := NewCombinedEstimator([]Estimator{a, b}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, c.Weights())
}

func TestCombinedEstimatorEqualWeights(t *testing.T) {
	a := fixedEstimator{name: "a", dist: Distribution{"x": 0.6, "y": 0.4}}
	b := fixedEstimator{name: "b", dist: Distribution{"x": 0.2, "y": 0.8}}

	c, err := NewCombinedEstimator([]Estimator{a, b}, nil)
	require.NoError(t, err)

	dist := c.Estimate(nil)
	assert.InDelta(t, 0.4, dist["x"], 1e-9)
	assert.InDelta(t, 0.6, dist["y"], 1e-9)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-6)
}

func TestCombinedEstimatorOfIdenticalComponentsReproducesComponent(t *testing.T) {
	for _, e := range []Estimator{NewWeatherEstimator(), NewFormEstimator(), NewCourseFitEstimator()} {
		t.Run(e.Name(), func(t *testing.T) {
			c, err := NewCombinedEstimator([]Estimator{e, e}, nil)
			require.NoError(t, err)

			want := e.Estimate(sampleTournament())
			got := c.Estimate(sampleTournament())
			require.Len(t, got, len(want))
			// exact up to the final renormalization, which can move the last bit
			assert.InDeltaMapValues(t, want, got, 1e-12)
		})
	}
}

func TestCombinedEstimatorClampsComponentValues(t *testing.T) {
	a := fixedEstimator{name: "a", dist: Distribution{"x": math.NaN(), "y": 1}}

	c, err := NewCombinedEstimator([]Estimator{a}, nil)
	require.NoError(t, err)

	dist := c.Estimate(nil)
	assert.Equal(t, 0.0, dist["x"])
	assert.InDelta(t, 1.0, dist["y"], 1e-12)
}

func TestDescribe(t *testing.T) {
	meta := Describe(fixedEstimator{name: "fixed"})
	assert.Equal(t, "fixed", meta.Name)
	assert.Nil(t, meta.Parameters)

	c, err := NewCombinedEstimator([]Estimator{NewFormEstimator(), NewWeatherEstimator()}, nil)
	require.NoError(t, err)
	meta = Describe(c)
	assert.Equal(t, c.Name(), meta.Name)
	assert.Equal(t, []float64{0.5, 0.5}, meta.Parameters["weights"])
}

func TestCombinedEstimatorSingleComponent(t *testing.T) {
	a := fixedEstimator{name: "a", dist: Distribution{"x": 3, "y": 1}}

	c, err := NewCombinedEstimator([]Estimator{a}, nil)
	require.NoError(t, err)

	dist := c.Estimate(nil)
	assert.InDelta(t, 0.75, dist["x"], 1e-9)
	assert.InDelta(t, 0.25, dist["y"], 1e-9)
}

func TestCombinedEstimatorUnionWithMissingAsZero(t *testing.T) {
	a := fixedEstimator{name: "a", dist: Distribution{"x": 0.5, "y": 0.5}}
	b := fixedEstimator{name: "b", dist: Distribution{"x": 0.5, "z": 0.5}}

	c, err := NewCombinedEstimator([]Estimator{a, b}, nil)
	require.NoError(t, err)

	dist := c.Estimate(nil)
	require.Len(t, dist, 3)
	// x: 0.5*0.5 + 0.5*0.5 = 0.5; y and z each 0.25
	assert.InDelta(t, 0.5, dist["x"], 1e-9)
	assert.InDelta(t, 0.25, dist["y"], 1e-9)
	assert.InDelta(t, 0.25, dist["z"], 1e-9)
}

func TestCombinedEstimatorWithBuiltins(t *testing.T) {
	c, err := NewCombinedEstimator([]Estimator{
		NewWeatherEstimator(), NewFormEstimator(), NewCourseFitEstimator(),
	}, nil)
	require.NoError(t, err)

	dist := c.Estimate(sampleTournament())
	assertNormalized(t, dist)
}
