package recs

import "time"

// Fallback returns the fixed sample recommendations shown when the live
// fetch fails, so the panel still has something to demonstrate. Expiries are
// relative to now; everything else is deterministic.
func Fallback(now time.Time) []Recommendation {
	return []Recommendation{
		{
			ID:            "sample-trending",
			Type:          TypeTrendingTopic,
			Title:         "Trending: AI productivity tools",
			Description:   "Searches for AI productivity tools spiked in the last 24 hours. A short link now would catch the wave.",
			SuggestedSlug: "ai-tools",
			TargetURL:     "https://example.com/ai-productivity-tools",
			Priority:      PriorityHigh,
			ExpiresAt:     now.Add(24 * time.Hour),
			CreatedAt:     now,
		},
		{
			ID:            "sample-campaign",
			Type:          TypeCampaignOptimization,
			Title:         "Refresh your newsletter campaign",
			Description:   "Your newsletter link has gone quiet. A fresh slug with a clearer call to action tends to recover clicks.",
			SuggestedSlug: "newsletter-v2",
			TargetURL:     "https://example.com/newsletter",
			Priority:      PriorityMedium,
			ExpiresAt:     now.Add(7 * 24 * time.Hour),
			CreatedAt:     now,
		},
		{
			ID:            "sample-audience",
			Type:          TypeAudienceTarget,
			Title:         "Reach your mobile audience",
			Description:   "Most of your recent clicks came from mobile devices. A link to your mobile landing page could convert better.",
			SuggestedSlug: "mobile-app",
			TargetURL:     "https://example.com/mobile",
			Priority:      PriorityMedium,
			ExpiresAt:     now.Add(3 * 24 * time.Hour),
			CreatedAt:     now,
		},
		{
			ID:            "sample-seasonal",
			Type:          TypeSeasonal,
			Title:         "Seasonal promotion window",
			Description:   "The next seasonal shopping period is coming up. Prepare a campaign link before traffic picks up.",
			SuggestedSlug: "seasonal-sale",
			TargetURL:     "https://example.com/sale",
			Priority:      PriorityLow,
			ExpiresAt:     now.Add(14 * 24 * time.Hour),
			CreatedAt:     now,
		},
	}
}
