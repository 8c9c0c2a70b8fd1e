package recs

import (
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2026, time.April, 15, 10, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)

	t.Run("no activity still yields a seasonal suggestion", func(t *testing.T) {
		got := Generate(now, nil)
		if len(got) != 1 {
			t.Fatalf("got %d recommendations, want 1", len(got))
		}
		if got[0].Type != TypeSeasonal {
			t.Errorf("type = %q, want %q", got[0].Type, TypeSeasonal)
		}
	})

	t.Run("hot link produces a trending suggestion", func(t *testing.T) {
		links := []LinkActivity{
			{Slug: "launch", URL: "https://example.com/launch", Clicks: 40, CreatedAt: now.Add(-72 * time.Hour), LastClick: &recent},
		}
		got := Generate(now, links)

		var trending *Recommendation
		for i := range got {
			if got[i].Type == TypeTrendingTopic {
				trending = &got[i]
			}
		}
		if trending == nil {
			t.Fatal("no trending-topic recommendation generated")
		}
		if trending.Priority != PriorityHigh {
			t.Errorf("trending priority = %q, want %q", trending.Priority, PriorityHigh)
		}
		if trending.SuggestedSlug != "launch-more" {
			t.Errorf("suggested slug = %q, want %q", trending.SuggestedSlug, "launch-more")
		}
		if trending.TargetURL != "https://example.com/launch" {
			t.Errorf("target url = %q, want the hot link's url", trending.TargetURL)
		}
	})

	t.Run("quiet old link produces a campaign refresh", func(t *testing.T) {
		links := []LinkActivity{
			{Slug: "old-promo", URL: "https://example.com/promo", Clicks: 0, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		}
		got := Generate(now, links)

		found := false
		for _, r := range got {
			if r.Type == TypeCampaignOptimization {
				found = true
				if r.SuggestedSlug != "old-promo-v2" {
					t.Errorf("suggested slug = %q, want %q", r.SuggestedSlug, "old-promo-v2")
				}
			}
		}
		if !found {
			t.Error("no campaign-optimization recommendation for a stale link")
		}
	})

	t.Run("click volume produces an audience suggestion for the top host", func(t *testing.T) {
		links := []LinkActivity{
			{Slug: "a", URL: "https://blog.example.com/one", Clicks: 20, CreatedAt: now.Add(-time.Hour)},
			{Slug: "b", URL: "https://blog.example.com/two", Clicks: 15, CreatedAt: now.Add(-time.Hour)},
			{Slug: "c", URL: "https://other.example.org/", Clicks: 5, CreatedAt: now.Add(-time.Hour)},
		}
		got := Generate(now, links)

		found := false
		for _, r := range got {
			if r.Type == TypeAudienceTarget {
				found = true
				if r.TargetURL != "https://blog.example.com" {
					t.Errorf("target url = %q, want the dominant host", r.TargetURL)
				}
			}
		}
		if !found {
			t.Error("no audience-target recommendation despite sufficient clicks")
		}
	})

	t.Run("ids are unique across a batch", func(t *testing.T) {
		links := []LinkActivity{
			{Slug: "hot", URL: "https://example.com/hot", Clicks: 50, CreatedAt: now.Add(-72 * time.Hour), LastClick: &recent},
			{Slug: "cold", URL: "https://example.com/cold", Clicks: 0, CreatedAt: now.Add(-60 * 24 * time.Hour)},
		}
		got := Generate(now, links)
		seen := map[string]bool{}
		for _, r := range got {
			if seen[r.ID] {
				t.Errorf("duplicate id %q", r.ID)
			}
			seen[r.ID] = true
		}
	})
}

func TestSeasonalSuggestionFollowsCalendar(t *testing.T) {
	tests := []struct {
		month    time.Month
		wantSlug string
	}{
		{time.December, "holiday-deals"},
		{time.July, "summer"},
		{time.January, "fresh-start"},
		{time.April, "seasonal"},
	}

	for _, tt := range tests {
		now := time.Date(2026, tt.month, 5, 0, 0, 0, 0, time.UTC)
		got := seasonalSuggestion(now)
		if got.SuggestedSlug != tt.wantSlug {
			t.Errorf("%v: suggested slug = %q, want %q", tt.month, got.SuggestedSlug, tt.wantSlug)
		}
		if got.Priority != PriorityLow {
			t.Errorf("%v: priority = %q, want %q", tt.month, got.Priority, PriorityLow)
		}
	}
}
