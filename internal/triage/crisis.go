package triage

import (
	"strings"
)

// Detector scans normalized text for crisis phrases. It is stateless and
// cheap enough to run synchronously on every message, before any other
// response is released to the user.
//
// Matching is case-insensitive substring containment, not tokenization:
// recall dominates precision here. A missed phrase is a safety failure; a
// false positive only costs an extra supportive message.
type Detector struct {
	phrases []string
}

// NewDetector fails loud on an empty catalog. Treating every message as
// non-crisis because configuration failed to load is not an acceptable
// degradation.
func NewDetector(phrases []string) (*Detector, error) {
	cleaned := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return nil, &ConfigurationError{Reason: "crisis phrase catalog is empty"}
	}
	return &Detector{phrases: cleaned}, nil
}

// Scan reports every matched phrase, not just the first.
func (d *Detector) Scan(text string, source CrisisSource) CrisisSignal {
	signal := CrisisSignal{Source: source}

	lowered := strings.ToLower(text)
	if lowered == "" {
		return signal
	}

	for _, phrase := range d.phrases {
		if strings.Contains(lowered, phrase) {
			signal.Detected = true
			signal.MatchedPhrases = append(signal.MatchedPhrases, phrase)
		}
	}

	return signal
}

// Phrases returns a copy of the configured catalog.
func (d *Detector) Phrases() []string {
	out := make([]string, len(d.phrases))
	copy(out, d.phrases)
	return out
}
