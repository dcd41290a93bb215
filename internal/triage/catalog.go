package triage

// ConcernArea identifies one entry of the fixed concern catalog.
type ConcernArea string

const (
	AreaAcademic     ConcernArea = "academic"
	AreaSocial       ConcernArea = "social"
	AreaAnxiety      ConcernArea = "anxiety"
	AreaDepression   ConcernArea = "depression"
	AreaSleep        ConcernArea = "sleep"
	AreaFinancial    ConcernArea = "financial"
	AreaFamily       ConcernArea = "family"
	AreaRelationship ConcernArea = "relationship"
)

type AreaInfo struct {
	ID          ConcernArea `json:"id"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

// areaCatalog is immutable after process start.
var areaCatalog = []AreaInfo{
	{AreaAcademic, "Academic Stress", "Pressure from coursework, exams, or grades"},
	{AreaSocial, "Social Isolation", "Feeling lonely or disconnected from others"},
	{AreaAnxiety, "Anxiety", "Excessive worry, panic attacks, or nervousness"},
	{AreaDepression, "Depression", "Persistent sadness, hopelessness, or loss of interest"},
	{AreaSleep, "Sleep Issues", "Trouble falling asleep, staying asleep, or feeling rested"},
	{AreaFinancial, "Financial Stress", "Money worries affecting your wellbeing"},
	{AreaFamily, "Family Problems", "Difficult relationships or situations at home"},
	{AreaRelationship, "Relationship Issues", "Problems with romantic or personal relationships"},
}

var areaIndex = func() map[ConcernArea]AreaInfo {
	idx := make(map[ConcernArea]AreaInfo, len(areaCatalog))
	for _, info := range areaCatalog {
		idx[info.ID] = info
	}
	return idx
}()

// Areas returns a copy of the concern catalog.
func Areas() []AreaInfo {
	out := make([]AreaInfo, len(areaCatalog))
	copy(out, areaCatalog)
	return out
}

func ValidArea(area ConcernArea) bool {
	_, ok := areaIndex[area]
	return ok
}

// ScreeningItemCount is the fixed length of the screening questionnaire.
const ScreeningItemCount = 9

// screeningItems follows the PHQ-9 wording; the last item is the self-harm
// item the escalation rule watches.
var screeningItems = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself or that you are a failure",
	"Trouble concentrating on things",
	"Moving or speaking slowly, or being fidgety/restless",
	"Thoughts that you would be better off dead or hurting yourself",
}

// ScreeningItems returns a copy of the screening questionnaire.
func ScreeningItems() []string {
	out := make([]string, len(screeningItems))
	copy(out, screeningItems)
	return out
}
