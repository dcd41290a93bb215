package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := NewScorer(8, 2)
	require.NoError(t, err)
	return scorer
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  SeverityBand
	}{
		{"well below moderate", 3.0, BandMild},
		{"just below moderate boundary", 5.9, BandMild},
		{"exact moderate boundary", 6.0, BandModerate},
		{"inside moderate", 7.9, BandModerate},
		{"exact high boundary", 8.0, BandHigh},
		{"above high", 9.5, BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BandFor(tt.score))
		})
	}
}

func TestScoreAveragesSuppliedRatings(t *testing.T) {
	scorer := newTestScorer(t)

	result := scorer.Score(&AssessmentInput{
		SelectedAreas: []ConcernArea{AreaAnxiety, AreaSleep},
		SeverityByArea: map[ConcernArea]int{
			AreaAnxiety: 9,
			AreaSleep:   7,
		},
	})

	assert.Equal(t, 8.0, result.Score)
	assert.Equal(t, BandHigh, result.Band)
	assert.Equal(t, 2, result.AreaCount)
}

func TestScoreDefaultsMissingRatingsToMidpoint(t *testing.T) {
	scorer := newTestScorer(t)

	result := scorer.Score(&AssessmentInput{
		SelectedAreas: []ConcernArea{AreaAnxiety, AreaSleep},
		SeverityByArea: map[ConcernArea]int{
			AreaAnxiety: 9,
		},
	})

	// (9 + default 5) / 2
	assert.Equal(t, 7.0, result.Score)
	assert.Equal(t, BandModerate, result.Band)
}

func TestScoreSingleMildArea(t *testing.T) {
	scorer := newTestScorer(t)

	result := scorer.Score(&AssessmentInput{
		SelectedAreas:  []ConcernArea{AreaAcademic},
		SeverityByArea: map[ConcernArea]int{AreaAcademic: 3},
	})

	assert.Equal(t, 3.0, result.Score)
	assert.Equal(t, BandMild, result.Band)
	assert.Equal(t, 1, result.AreaCount)
}

func TestScoreNoSelectedAreasSitsAtMidpoint(t *testing.T) {
	scorer := newTestScorer(t)

	result := scorer.Score(&AssessmentInput{})

	assert.Equal(t, float64(DefaultRating), result.Score)
	assert.Equal(t, BandMild, result.Band)
	assert.Equal(t, 0, result.AreaCount)
}

func TestScreeningEscalation(t *testing.T) {
	scorer := newTestScorer(t)

	tests := []struct {
		name     string
		answer   int
		detected bool
	}{
		{"not at all", 0, false},
		{"several days", 1, false},
		{"more than half the days", 2, true},
		{"nearly every day", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screening := make([]int, ScreeningItemCount)
			screening[8] = tt.answer

			signal := scorer.ScreeningEscalation(&AssessmentInput{Screening: screening})

			assert.Equal(t, tt.detected, signal.Detected)
			assert.Equal(t, SourceAssessment, signal.Source)
			if tt.detected {
				assert.NotEmpty(t, signal.MatchedPhrases)
			}
		})
	}
}

func TestScreeningEscalationShortSequenceDoesNotPanic(t *testing.T) {
	scorer := newTestScorer(t)

	signal := scorer.ScreeningEscalation(&AssessmentInput{Screening: []int{3, 3}})
	assert.False(t, signal.Detected)
}

func TestScreeningSumIndependentOfBand(t *testing.T) {
	in := &AssessmentInput{Screening: []int{1, 2, 3, 0, 1, 2, 3, 0, 1}}
	assert.Equal(t, 13, ScreeningSum(in))
}

func TestNewScorerRejectsBadConfiguration(t *testing.T) {
	_, err := NewScorer(ScreeningItemCount, 2)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewScorer(8, 4)
	require.ErrorAs(t, err, &cfgErr)
}
