package triage

// Demographics is purely descriptive. It is kept on its own type so nothing
// in scoring can reach for it.
type Demographics struct {
	YearOfStudy     string `json:"year_of_study,omitempty"`
	CollegeType     string `json:"college_type,omitempty"`
	PreviousSupport string `json:"previous_support,omitempty"`
}

// AssessmentInput is the validated, immutable form of one assessment
// submission. It lives for a single request and is never stored.
type AssessmentInput struct {
	SelectedAreas  []ConcernArea
	SeverityByArea map[ConcernArea]int
	Screening      []int
	Notes          string
	Demographics   Demographics
}

type CrisisSource string

const (
	SourceAssessment CrisisSource = "assessment"
	SourceChat       CrisisSource = "chat"
)

// CrisisSignal is produced fresh per input and never aggregated across turns.
type CrisisSignal struct {
	Detected       bool         `json:"detected"`
	MatchedPhrases []string     `json:"matched_phrases,omitempty"`
	Source         CrisisSource `json:"source"`
}

type SeverityBand string

const (
	BandMild     SeverityBand = "mild"
	BandModerate SeverityBand = "moderate"
	BandHigh     SeverityBand = "high"
)

type SeverityResult struct {
	Band      SeverityBand `json:"band"`
	Score     float64      `json:"score"`
	AreaCount int          `json:"area_count"`
}

type Channel string

const (
	ChannelAIChat       Channel = "ai_chat"
	ChannelPeerSupport  Channel = "peer_support"
	ChannelProfessional Channel = "professional"
)

type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyPriority Urgency = "priority"
	UrgencySameDay  Urgency = "same_day"
)

type ChannelRecommendation struct {
	Channel       Channel `json:"channel"`
	Suitable      bool    `json:"suitable"`
	Urgency       Urgency `json:"urgency"`
	EstimatedWait string  `json:"estimated_wait"`
	// Note points unsuitable channels at immediate crisis resources.
	// Options are marked, never hidden.
	Note string `json:"note,omitempty"`
}

// TriageResult is the pipeline's full verdict. Severity is nil when scoring
// never ran, which happens only for the crisis escalation attached to a
// rejected submission.
type TriageResult struct {
	Severity        *SeverityResult         `json:"severity,omitempty"`
	Crisis          CrisisSignal            `json:"crisis"`
	Recommendations []ChannelRecommendation `json:"recommendations"`
}

// CrisisResources is the fixed safety payload returned instead of a
// conversational reply when a crisis signal fires.
type CrisisResources struct {
	Message        string `json:"message"`
	Hotline        string `json:"hotline"`
	TextLine       string `json:"text_line"`
	EscalationPath string `json:"escalation_path"`
}

func DefaultCrisisResources() CrisisResources {
	return CrisisResources{
		Message: "I'm concerned about what you've shared. Your safety is the most important thing right now. " +
			"Please consider reaching out to immediate crisis support:",
		Hotline:        "Call Crisis Helpline: 988",
		TextLine:       "Text HOME to 741741",
		EscalationPath: "/api/v1/resources?topic=crisis",
	}
}
