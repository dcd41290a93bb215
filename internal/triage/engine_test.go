package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(newTestDetector(t), newTestScorer(t))
}

func TestTriageHighSeverityNoCrisis(t *testing.T) {
	engine := newTestEngine(t)

	result, flags, err := engine.Assess(RawAssessment{
		Areas:     []string{"anxiety", "sleep"},
		Ratings:   map[string]int{"anxiety": 9, "sleep": 7},
		Screening: make([]int, ScreeningItemCount),
	})
	require.NoError(t, err)
	assert.Empty(t, flags)

	assert.Equal(t, 8.0, result.Severity.Score)
	assert.Equal(t, BandHigh, result.Severity.Band)
	assert.False(t, result.Crisis.Detected)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, ChannelProfessional, result.Recommendations[0].Channel)
	assert.Equal(t, UrgencyPriority, result.Recommendations[0].Urgency)
}

func TestTriageMildSeverity(t *testing.T) {
	engine := newTestEngine(t)

	result, _, err := engine.Assess(RawAssessment{
		Areas:     []string{"academic"},
		Ratings:   map[string]int{"academic": 3},
		Screening: make([]int, ScreeningItemCount),
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, result.Severity.Score)
	assert.Equal(t, BandMild, result.Severity.Band)
	assert.Equal(t, ChannelAIChat, result.Recommendations[0].Channel)
	for _, rec := range result.Recommendations {
		assert.True(t, rec.Suitable)
	}
}

func TestScreeningPromotionForcesCrisisRouting(t *testing.T) {
	engine := newTestEngine(t)

	screening := make([]int, ScreeningItemCount)
	screening[8] = 3

	result, _, err := engine.Assess(RawAssessment{
		Areas:     []string{"academic"},
		Ratings:   map[string]int{"academic": 2},
		Screening: screening,
	})
	require.NoError(t, err)

	// Mild severity, yet the crisis axis wins.
	assert.Equal(t, BandMild, result.Severity.Band)
	assert.True(t, result.Crisis.Detected)
	assert.Equal(t, SourceAssessment, result.Crisis.Source)
	assert.Equal(t, UrgencySameDay, result.Recommendations[0].Urgency)
	assert.False(t, result.Recommendations[1].Suitable)
	assert.False(t, result.Recommendations[2].Suitable)
}

func TestNotesCrisisScanOnValidInput(t *testing.T) {
	engine := newTestEngine(t)

	result, _, err := engine.Assess(RawAssessment{
		Areas:     []string{"depression"},
		Ratings:   map[string]int{"depression": 4},
		Screening: make([]int, ScreeningItemCount),
		Notes:     "lately it feels like it's Not Worth Living",
	})
	require.NoError(t, err)

	assert.True(t, result.Crisis.Detected)
	assert.Contains(t, result.Crisis.MatchedPhrases, "not worth living")
}

func TestCrisisScanRunsBeforeValidationVerdict(t *testing.T) {
	engine := newTestEngine(t)

	result, _, err := engine.Assess(RawAssessment{
		Areas:     []string{"not-a-real-area"},
		Screening: []int{},
		Notes:     "I want to end it all",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// The error is reported, but the crisis escalation is not lost.
	require.NotNil(t, result)
	assert.True(t, result.Crisis.Detected)
	// Scoring never ran on the rejected submission; no severity is faked.
	assert.Nil(t, result.Severity)
	assert.Equal(t, ChannelProfessional, result.Recommendations[0].Channel)
	assert.Equal(t, UrgencySameDay, result.Recommendations[0].Urgency)
}

func TestInvalidInputWithoutCrisisReturnsOnlyError(t *testing.T) {
	engine := newTestEngine(t)

	result, _, err := engine.Assess(RawAssessment{
		Areas:     []string{},
		Screening: []int{},
		Notes:     "just a note",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, result)
}

func TestPipelineIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)

	raw := RawAssessment{
		Areas:     []string{"anxiety", "sleep", "family"},
		Ratings:   map[string]int{"anxiety": 8, "sleep": 6},
		Screening: []int{1, 2, 0, 1, 0, 2, 1, 0, 0},
		Notes:     "rough semester",
	}

	first, _, err1 := engine.Assess(raw)
	second, _, err2 := engine.Assess(raw)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestScanMessageChatSource(t *testing.T) {
	engine := newTestEngine(t)

	signal := engine.ScanMessage("  I want to KILL myself  ")
	assert.True(t, signal.Detected)
	assert.Equal(t, SourceChat, signal.Source)

	benign := engine.ScanMessage("killing time between lectures")
	assert.False(t, benign.Detected)
}
