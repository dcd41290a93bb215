// Package assessment holds the linear step flow that collects an assessment
// before it is triaged. Each step's data survives moving backward; the
// pipeline fires exactly once, on completion.
package assessment

import (
	"errors"

	"github.com/furyfist/WellNest/internal/triage"
)

type Step int

const (
	StepCollectingAreas Step = iota
	StepRatingSeverity
	StepScreening
	StepCollectingDemographics
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepCollectingAreas:
		return "collecting_areas"
	case StepRatingSeverity:
		return "rating_severity"
	case StepScreening:
		return "screening"
	case StepCollectingDemographics:
		return "collecting_demographics"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	ErrFlowComplete  = errors.New("assessment flow already complete")
	ErrNoAreas       = errors.New("select at least one concern area before continuing")
	ErrNotAtLastStep = errors.New("assessment flow has steps remaining")
)

// Session is one anonymous assessment run. It is not safe for concurrent
// use; one session belongs to one user interaction.
type Session struct {
	engine *triage.Engine

	step         Step
	areas        []string
	ratings      map[string]int
	screening    []int
	notes        string
	demographics triage.Demographics

	result *triage.TriageResult
	flags  []triage.FieldError
	err    error
}

func NewSession(engine *triage.Engine) *Session {
	return &Session{
		engine:  engine,
		step:    StepCollectingAreas,
		ratings: make(map[string]int),
	}
}

func (s *Session) Step() Step {
	return s.step
}

// SetAreas, SetRating, SetScreening, SetNotes and SetDemographics may be
// called at any step before completion: moving back and re-editing a
// previous step never discards later answers.

func (s *Session) SetAreas(areas []string) error {
	if s.step == StepComplete {
		return ErrFlowComplete
	}
	s.areas = append([]string(nil), areas...)
	return nil
}

func (s *Session) SetRating(area string, rating int) error {
	if s.step == StepComplete {
		return ErrFlowComplete
	}
	s.ratings[area] = rating
	return nil
}

func (s *Session) SetScreening(answers []int) error {
	if s.step == StepComplete {
		return ErrFlowComplete
	}
	s.screening = append([]int(nil), answers...)
	return nil
}

func (s *Session) SetNotes(notes string) error {
	if s.step == StepComplete {
		return ErrFlowComplete
	}
	s.notes = notes
	return nil
}

func (s *Session) SetDemographics(d triage.Demographics) error {
	if s.step == StepComplete {
		return ErrFlowComplete
	}
	s.demographics = d
	return nil
}

// Next advances one step. Leaving the first step requires at least one
// selected area; everything else is validated by the pipeline on completion.
func (s *Session) Next() error {
	switch s.step {
	case StepComplete:
		return ErrFlowComplete
	case StepCollectingAreas:
		if len(s.areas) == 0 {
			return ErrNoAreas
		}
	}
	s.step++
	return nil
}

// Back moves one step toward the start. Collected data is retained.
func (s *Session) Back() {
	if s.step > StepCollectingAreas && s.step != StepComplete {
		s.step--
	}
}

// Complete triggers the triage pipeline exactly once and transitions the
// session to its terminal step. Repeat calls return the first outcome.
func (s *Session) Complete() (*triage.TriageResult, []triage.FieldError, error) {
	if s.step == StepComplete {
		return s.result, s.flags, s.err
	}
	if s.step != StepCollectingDemographics {
		return nil, nil, ErrNotAtLastStep
	}

	raw := triage.RawAssessment{
		Areas:        s.areas,
		Ratings:      s.ratings,
		Screening:    s.screening,
		Notes:        s.notes,
		Demographics: s.demographics,
	}

	s.result, s.flags, s.err = s.engine.Assess(raw)
	s.step = StepComplete
	return s.result, s.flags, s.err
}
