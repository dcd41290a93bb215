package triage

import (
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/pkg/logger"
)

// Engine wires the normalizer, detector, scorer and router into the
// per-interaction pipeline. Every entity it touches lives for exactly one
// call; nothing is retained between requests.
type Engine struct {
	detector *Detector
	scorer   *Scorer
}

func NewEngine(detector *Detector, scorer *Scorer) *Engine {
	return &Engine{detector: detector, scorer: scorer}
}

func (e *Engine) Detector() *Detector {
	return e.detector
}

// Assess runs the full pipeline on raw assessment state. The crisis scan on
// the free-text notes runs before the validation verdict is reported: a
// failed submission with crisis text in it still escalates.
func (e *Engine) Assess(raw RawAssessment) (*TriageResult, []FieldError, error) {
	input, flags, err := NormalizeAssessment(raw)
	if err != nil {
		if signal := e.detector.Scan(NormalizeMessage(raw.Notes), SourceAssessment); signal.Detected {
			logger.Warn("Crisis signal in rejected assessment",
				zap.Int("matched_phrases", len(signal.MatchedPhrases)),
			)
			return &TriageResult{
				Crisis:          signal,
				Recommendations: Route(SeverityResult{}, signal),
			}, flags, err
		}
		return nil, flags, err
	}

	return e.Triage(input), flags, nil
}

// Triage classifies a validated input. Crisis detection and severity scoring
// are independent axes; the screening escalation is a one-way promotion from
// screening into the crisis signal, never the reverse.
func (e *Engine) Triage(in *AssessmentInput) *TriageResult {
	crisis := e.detector.Scan(in.Notes, SourceAssessment)

	if escalation := e.scorer.ScreeningEscalation(in); escalation.Detected {
		crisis.Detected = true
		crisis.MatchedPhrases = append(crisis.MatchedPhrases, escalation.MatchedPhrases...)
	}

	severity := e.scorer.Score(in)

	return &TriageResult{
		Severity:        &severity,
		Crisis:          crisis,
		Recommendations: Route(severity, crisis),
	}
}

// ScanMessage is the chat-turn entry point. It must complete before any
// conversational reply is released.
func (e *Engine) ScanMessage(message string) CrisisSignal {
	return e.detector.Scan(NormalizeMessage(message), SourceChat)
}
