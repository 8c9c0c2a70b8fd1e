package recs

import "time"

// Type categorizes a recommendation and drives its iconography.
type Type string

const (
	TypeTrendingTopic        Type = "trending-topic"
	TypeCampaignOptimization Type = "campaign-optimization"
	TypeAudienceTarget       Type = "audience-target"
	TypeSeasonal             Type = "seasonal"
)

// Priority is the urgency tier of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a server-suggested link-creation opportunity.
type Recommendation struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SuggestedSlug string    `json:"suggested_slug"`
	TargetURL     string    `json:"target_url,omitempty"`
	Priority      Priority  `json:"priority"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// Style is the visual treatment of a priority tier.
type Style struct {
	Tone string `json:"tone"`
	Icon string `json:"icon"`
}

// StyleFor maps a priority to its visual treatment. Unrecognized values get
// a neutral treatment instead of being dropped.
func StyleFor(p Priority) Style {
	switch p {
	case PriorityHigh:
		return Style{Tone: "red", Icon: "alert"}
	case PriorityMedium:
		return Style{Tone: "yellow", Icon: "clock"}
	case PriorityLow:
		return Style{Tone: "blue", Icon: "check"}
	default:
		return Style{Tone: "gray", Icon: "bell"}
	}
}

// IconFor maps a recommendation type to its leading icon, with a generic
// fallback for types this version does not know about.
func IconFor(t Type) string {
	switch t {
	case TypeTrendingTopic:
		return "trending"
	case TypeCampaignOptimization:
		return "target"
	case TypeAudienceTarget:
		return "sparkle"
	case TypeSeasonal:
		return "clock"
	default:
		return "idea"
	}
}
