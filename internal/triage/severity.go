package triage

import "fmt"

// Band thresholds are fixed, documented constants. They are deliberately not
// configurable per user so the mapping stays deterministic and auditable.
const (
	ThresholdHigh     = 8.0
	ThresholdModerate = 6.0

	// DefaultRating fills in for a selected area the user never rated.
	DefaultRating = 5
)

// Scorer maps structured assessment data to a severity band, and carries the
// one configurable interaction with crisis detection: a high answer on the
// self-harm screening item promotes the assessment to a crisis signal.
// The promotion is one-way; severity never suppresses a crisis.
type Scorer struct {
	screeningCrisisItem  int
	screeningCrisisLevel int
}

func NewScorer(screeningCrisisItem, screeningCrisisLevel int) (*Scorer, error) {
	if screeningCrisisItem < 0 || screeningCrisisItem >= ScreeningItemCount {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("screening crisis item %d outside 0..%d", screeningCrisisItem, ScreeningItemCount-1),
		}
	}
	if screeningCrisisLevel < ScreeningMin || screeningCrisisLevel > ScreeningMax {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("screening crisis level %d outside %d..%d", screeningCrisisLevel, ScreeningMin, ScreeningMax),
		}
	}
	return &Scorer{
		screeningCrisisItem:  screeningCrisisItem,
		screeningCrisisLevel: screeningCrisisLevel,
	}, nil
}

// Score averages the per-area ratings over every selected area, substituting
// DefaultRating for areas the user left unrated. With nothing selected the
// score sits at the midpoint rather than an empty-set average.
func (s *Scorer) Score(in *AssessmentInput) SeverityResult {
	if len(in.SelectedAreas) == 0 {
		return SeverityResult{Band: BandFor(DefaultRating), Score: DefaultRating}
	}

	sum := 0
	for _, area := range in.SelectedAreas {
		rating, ok := in.SeverityByArea[area]
		if !ok {
			rating = DefaultRating
		}
		sum += rating
	}

	score := float64(sum) / float64(len(in.SelectedAreas))
	return SeverityResult{
		Band:      BandFor(score),
		Score:     score,
		AreaCount: len(in.SelectedAreas),
	}
}

// ScreeningEscalation checks the self-harm screening item. A detected signal
// carries the item wording so callers can explain the escalation.
func (s *Scorer) ScreeningEscalation(in *AssessmentInput) CrisisSignal {
	signal := CrisisSignal{Source: SourceAssessment}

	if s.screeningCrisisItem >= len(in.Screening) {
		return signal
	}
	if in.Screening[s.screeningCrisisItem] >= s.screeningCrisisLevel {
		signal.Detected = true
		signal.MatchedPhrases = []string{screeningItems[s.screeningCrisisItem]}
	}

	return signal
}

// ScreeningSum is computed independently of the band score.
func ScreeningSum(in *AssessmentInput) int {
	sum := 0
	for _, answer := range in.Screening {
		sum += answer
	}
	return sum
}

func BandFor(score float64) SeverityBand {
	switch {
	case score >= ThresholdHigh:
		return BandHigh
	case score >= ThresholdModerate:
		return BandModerate
	default:
		return BandMild
	}
}
