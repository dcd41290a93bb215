package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func channels(recs []ChannelRecommendation) []Channel {
	out := make([]Channel, len(recs))
	for i, r := range recs {
		out[i] = r.Channel
	}
	return out
}

func TestRouteMildOrdering(t *testing.T) {
	recs := Route(SeverityResult{Band: BandMild, Score: 3.0}, CrisisSignal{})

	require.Len(t, recs, 3)
	assert.Equal(t, []Channel{ChannelAIChat, ChannelPeerSupport, ChannelProfessional}, channels(recs))

	for _, rec := range recs {
		assert.True(t, rec.Suitable)
	}
	assert.Equal(t, UrgencyStandard, recs[2].Urgency)
	assert.Equal(t, "1-3 days", recs[2].EstimatedWait)
}

func TestRouteModerateMatchesMild(t *testing.T) {
	mild := Route(SeverityResult{Band: BandMild, Score: 4.0}, CrisisSignal{})
	moderate := Route(SeverityResult{Band: BandModerate, Score: 7.0}, CrisisSignal{})

	assert.Equal(t, mild, moderate)
}

func TestRouteHighOrdering(t *testing.T) {
	recs := Route(SeverityResult{Band: BandHigh, Score: 8.0}, CrisisSignal{})

	require.Len(t, recs, 3)
	assert.Equal(t, []Channel{ChannelProfessional, ChannelAIChat, ChannelPeerSupport}, channels(recs))

	assert.True(t, recs[0].Suitable)
	assert.Equal(t, UrgencyPriority, recs[0].Urgency)
	assert.Equal(t, "Same day", recs[0].EstimatedWait)
	assert.True(t, recs[1].Suitable)
	assert.True(t, recs[2].Suitable)
}

func TestRouteCrisisOverridesEveryBand(t *testing.T) {
	crisis := CrisisSignal{Detected: true, Source: SourceChat, MatchedPhrases: []string{"suicide"}}

	for _, band := range []SeverityBand{BandMild, BandModerate, BandHigh} {
		recs := Route(SeverityResult{Band: band}, crisis)

		require.Len(t, recs, 3)
		assert.Equal(t, ChannelProfessional, recs[0].Channel)
		assert.True(t, recs[0].Suitable)
		assert.Equal(t, UrgencySameDay, recs[0].Urgency)

		// The other channels are marked, not hidden.
		for _, rec := range recs[1:] {
			assert.False(t, rec.Suitable)
			assert.NotEmpty(t, rec.Note)
		}
	}
}

func TestRouteIsPure(t *testing.T) {
	severity := SeverityResult{Band: BandHigh, Score: 8.5, AreaCount: 2}
	crisis := CrisisSignal{Detected: true, Source: SourceAssessment}

	assert.Equal(t, Route(severity, crisis), Route(severity, crisis))
}
