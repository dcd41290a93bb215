package triage

import (
	"fmt"
	"sort"
	"strings"
)

const (
	RatingMin = 1
	RatingMax = 10

	ScreeningMin = 0
	ScreeningMax = 3
)

// RawAssessment is the untyped payload as it arrives from the assessment
// flow, before any validation.
type RawAssessment struct {
	Areas        []string       `json:"areas"`
	Ratings      map[string]int `json:"ratings"`
	Screening    []int          `json:"screening"`
	Notes        string         `json:"notes"`
	Demographics Demographics   `json:"demographics"`
}

// NormalizeAssessment validates a raw submission into an AssessmentInput.
// Unknown concern tags are rejected rather than dropped so data-entry bugs
// surface instead of silently shrinking the input. Out-of-range ratings are
// clamped and reported as flags, not failures. All field errors are
// collected before returning.
func NormalizeAssessment(raw RawAssessment) (*AssessmentInput, []FieldError, error) {
	var errs []FieldError
	var flags []FieldError

	if len(raw.Areas) == 0 {
		errs = append(errs, FieldError{Field: "areas", Message: "at least one concern area must be selected"})
	}

	selected := make([]ConcernArea, 0, len(raw.Areas))
	seen := make(map[ConcernArea]bool, len(raw.Areas))
	for _, tag := range raw.Areas {
		area := ConcernArea(strings.ToLower(strings.TrimSpace(tag)))
		if !ValidArea(area) {
			errs = append(errs, FieldError{
				Field:   "areas",
				Message: fmt.Sprintf("unknown concern area %q", tag),
			})
			continue
		}
		if seen[area] {
			continue
		}
		seen[area] = true
		selected = append(selected, area)
	}

	ratings := make(map[ConcernArea]int, len(raw.Ratings))
	ratingKeys := make([]string, 0, len(raw.Ratings))
	for key := range raw.Ratings {
		ratingKeys = append(ratingKeys, key)
	}
	sort.Strings(ratingKeys)
	for _, key := range ratingKeys {
		area := ConcernArea(strings.ToLower(strings.TrimSpace(key)))
		if !seen[area] {
			errs = append(errs, FieldError{
				Field:   "ratings." + key,
				Message: "rating refers to an area that was not selected",
			})
			continue
		}

		value := raw.Ratings[key]
		switch {
		case value < RatingMin:
			flags = append(flags, FieldError{
				Field:   "ratings." + key,
				Message: fmt.Sprintf("rating %d below minimum, clamped to %d", value, RatingMin),
			})
			value = RatingMin
		case value > RatingMax:
			flags = append(flags, FieldError{
				Field:   "ratings." + key,
				Message: fmt.Sprintf("rating %d above maximum, clamped to %d", value, RatingMax),
			})
			value = RatingMax
		}
		ratings[area] = value
	}

	if len(raw.Screening) != ScreeningItemCount {
		errs = append(errs, FieldError{
			Field:   "screening",
			Message: fmt.Sprintf("expected %d screening answers, got %d", ScreeningItemCount, len(raw.Screening)),
		})
	}
	screening := make([]int, len(raw.Screening))
	for i, answer := range raw.Screening {
		if answer < ScreeningMin || answer > ScreeningMax {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("screening[%d]", i),
				Message: fmt.Sprintf("answer %d outside range %d..%d", answer, ScreeningMin, ScreeningMax),
			})
		}
		screening[i] = answer
	}

	if len(errs) > 0 {
		return nil, flags, &ValidationError{Fields: errs}
	}

	return &AssessmentInput{
		SelectedAreas:  selected,
		SeverityByArea: ratings,
		Screening:      screening,
		Notes:          NormalizeMessage(raw.Notes),
		Demographics:   raw.Demographics,
	}, flags, nil
}

// NormalizeMessage canonicalizes a chat message for crisis scanning.
func NormalizeMessage(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(text)
}
