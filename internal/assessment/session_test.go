package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furyfist/WellNest/internal/triage"
)

func newTestEngine(t *testing.T) *triage.Engine {
	t.Helper()
	detector, err := triage.NewDetector([]string{"hurt myself", "suicide", "kill myself"})
	require.NoError(t, err)
	scorer, err := triage.NewScorer(8, 2)
	require.NoError(t, err)
	return triage.NewEngine(detector, scorer)
}

func TestLinearFlow(t *testing.T) {
	s := NewSession(newTestEngine(t))
	assert.Equal(t, StepCollectingAreas, s.Step())

	require.NoError(t, s.SetAreas([]string{"anxiety"}))
	require.NoError(t, s.Next())
	assert.Equal(t, StepRatingSeverity, s.Step())

	require.NoError(t, s.SetRating("anxiety", 7))
	require.NoError(t, s.Next())
	assert.Equal(t, StepScreening, s.Step())

	require.NoError(t, s.SetScreening(make([]int, triage.ScreeningItemCount)))
	require.NoError(t, s.Next())
	assert.Equal(t, StepCollectingDemographics, s.Step())

	result, flags, err := s.Complete()
	require.NoError(t, err)
	assert.Empty(t, flags)
	assert.Equal(t, StepComplete, s.Step())
	assert.Equal(t, 7.0, result.Severity.Score)
}

func TestNextRequiresAreas(t *testing.T) {
	s := NewSession(newTestEngine(t))
	assert.ErrorIs(t, s.Next(), ErrNoAreas)
}

func TestBackRetainsData(t *testing.T) {
	s := NewSession(newTestEngine(t))

	require.NoError(t, s.SetAreas([]string{"sleep"}))
	require.NoError(t, s.Next())
	require.NoError(t, s.SetRating("sleep", 9))
	require.NoError(t, s.Next())
	require.NoError(t, s.SetScreening(make([]int, triage.ScreeningItemCount)))

	// Walk back to the start and forward again; nothing is lost.
	s.Back()
	s.Back()
	assert.Equal(t, StepCollectingAreas, s.Step())

	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	result, _, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 9.0, result.Severity.Score)
}

func TestBackStopsAtFirstStep(t *testing.T) {
	s := NewSession(newTestEngine(t))
	s.Back()
	assert.Equal(t, StepCollectingAreas, s.Step())
}

func TestCompleteOnlyAtLastStep(t *testing.T) {
	s := NewSession(newTestEngine(t))
	require.NoError(t, s.SetAreas([]string{"anxiety"}))

	_, _, err := s.Complete()
	assert.ErrorIs(t, err, ErrNotAtLastStep)
}

func TestCompleteTriggersPipelineOnce(t *testing.T) {
	s := NewSession(newTestEngine(t))

	require.NoError(t, s.SetAreas([]string{"anxiety"}))
	require.NoError(t, s.Next())
	require.NoError(t, s.SetRating("anxiety", 5))
	require.NoError(t, s.Next())
	require.NoError(t, s.SetScreening(make([]int, triage.ScreeningItemCount)))
	require.NoError(t, s.Next())

	first, _, err := s.Complete()
	require.NoError(t, err)

	second, _, err := s.Complete()
	require.NoError(t, err)
	assert.Same(t, first, second, "repeat completion returns the original result")

	assert.ErrorIs(t, s.SetAreas([]string{"sleep"}), ErrFlowComplete)
	assert.ErrorIs(t, s.Next(), ErrFlowComplete)
}

func TestDemographicsNeverAffectScore(t *testing.T) {
	build := func(d triage.Demographics) *triage.TriageResult {
		s := NewSession(newTestEngine(t))
		require.NoError(t, s.SetAreas([]string{"financial"}))
		require.NoError(t, s.Next())
		require.NoError(t, s.SetRating("financial", 6))
		require.NoError(t, s.Next())
		require.NoError(t, s.SetScreening(make([]int, triage.ScreeningItemCount)))
		require.NoError(t, s.Next())
		require.NoError(t, s.SetDemographics(d))

		result, _, err := s.Complete()
		require.NoError(t, err)
		return result
	}

	plain := build(triage.Demographics{})
	detailed := build(triage.Demographics{YearOfStudy: "4th", CollegeType: "private", PreviousSupport: "yes"})

	assert.Equal(t, plain.Severity, detailed.Severity)
	assert.Equal(t, plain.Recommendations, detailed.Recommendations)
}
