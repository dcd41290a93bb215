package triage

// Wait labels shown on channel cards. The router is the single source of
// truth for these; the UI must not recompute them.
const (
	waitAIChat           = "< 1 minute"
	waitPeerSupport      = "5-15 minutes"
	waitProfessionalSame = "Same day"
	waitProfessionalStd  = "1-3 days"

	crisisRedirectNote = "Immediate crisis support recommended - call 988 or text HOME to 741741"
)

// Route turns a severity result and crisis signal into the ordered
// recommendation list. Pure function; identical inputs always produce
// identical output.
//
// The decision table:
//
//	crisis detected      -> professional(same_day) first, others unsuitable
//	high, no crisis      -> professional(priority), ai_chat, peer_support
//	moderate/mild        -> ai_chat, peer_support, professional(standard)
//
// professional is always present and always suitable; when a crisis fires
// the other channels stay in the list, marked unsuitable with a pointer to
// crisis resources, so the user sees why they were redirected.
func Route(severity SeverityResult, crisis CrisisSignal) []ChannelRecommendation {
	if crisis.Detected {
		return []ChannelRecommendation{
			{
				Channel:       ChannelProfessional,
				Suitable:      true,
				Urgency:       UrgencySameDay,
				EstimatedWait: waitProfessionalSame,
			},
			{
				Channel:       ChannelAIChat,
				Suitable:      false,
				Urgency:       UrgencyStandard,
				EstimatedWait: waitAIChat,
				Note:          crisisRedirectNote,
			},
			{
				Channel:       ChannelPeerSupport,
				Suitable:      false,
				Urgency:       UrgencyStandard,
				EstimatedWait: waitPeerSupport,
				Note:          crisisRedirectNote,
			},
		}
	}

	aiChat := ChannelRecommendation{
		Channel:       ChannelAIChat,
		Suitable:      true,
		Urgency:       UrgencyStandard,
		EstimatedWait: waitAIChat,
	}
	peer := ChannelRecommendation{
		Channel:       ChannelPeerSupport,
		Suitable:      true,
		Urgency:       UrgencyStandard,
		EstimatedWait: waitPeerSupport,
	}

	if severity.Band == BandHigh {
		professional := ChannelRecommendation{
			Channel:       ChannelProfessional,
			Suitable:      true,
			Urgency:       UrgencyPriority,
			EstimatedWait: waitProfessionalSame,
		}
		return []ChannelRecommendation{professional, aiChat, peer}
	}

	professional := ChannelRecommendation{
		Channel:       ChannelProfessional,
		Suitable:      true,
		Urgency:       UrgencyStandard,
		EstimatedWait: waitProfessionalStd,
	}
	return []ChannelRecommendation{aiChat, peer, professional}
}
