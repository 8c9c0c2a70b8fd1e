package recs

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	trendingClickFloor = 10
	trendingWindow     = 48 * time.Hour
	staleLinkAge       = 14 * 24 * time.Hour
	audienceClickFloor = 25
)

// LinkActivity is the per-link click summary the generator works from.
type LinkActivity struct {
	Slug      string
	URL       string
	Clicks    int64
	CreatedAt time.Time
	LastClick *time.Time
}

// Generate derives link-creation suggestions from recent link activity.
// It produces at most one recommendation per category; ordering follows
// category priority so the panel shows the most urgent suggestion first.
func Generate(now time.Time, links []LinkActivity) []Recommendation {
	var out []Recommendation

	if rec, ok := trendingSuggestion(now, links); ok {
		out = append(out, rec)
	}
	if rec, ok := staleCampaignSuggestion(now, links); ok {
		out = append(out, rec)
	}
	if rec, ok := audienceSuggestion(now, links); ok {
		out = append(out, rec)
	}
	out = append(out, seasonalSuggestion(now))

	log.Debug().Int("count", len(out)).Msg("generated recommendations")
	return out
}

func trendingSuggestion(now time.Time, links []LinkActivity) (Recommendation, bool) {
	hot := lo.Filter(links, func(l LinkActivity, _ int) bool {
		return l.Clicks >= trendingClickFloor && l.LastClick != nil && now.Sub(*l.LastClick) <= trendingWindow
	})
	if len(hot) == 0 {
		return Recommendation{}, false
	}

	top := lo.MaxBy(hot, func(a, b LinkActivity) bool { return a.Clicks > b.Clicks })
	return Recommendation{
		ID:            uuid.NewString(),
		Type:          TypeTrendingTopic,
		Title:         fmt.Sprintf("Ride the traffic on /%s", top.Slug),
		Description:   fmt.Sprintf("/%s picked up %d clicks recently. A follow-up link while interest is high tends to compound.", top.Slug, top.Clicks),
		SuggestedSlug: top.Slug + "-more",
		TargetURL:     top.URL,
		Priority:      PriorityHigh,
		ExpiresAt:     now.Add(24 * time.Hour),
		CreatedAt:     now,
	}, true
}

func staleCampaignSuggestion(now time.Time, links []LinkActivity) (Recommendation, bool) {
	stale, ok := lo.Find(links, func(l LinkActivity) bool {
		return l.Clicks == 0 && now.Sub(l.CreatedAt) >= staleLinkAge
	})
	if !ok {
		return Recommendation{}, false
	}

	return Recommendation{
		ID:            uuid.NewString(),
		Type:          TypeCampaignOptimization,
		Title:         fmt.Sprintf("Relaunch /%s", stale.Slug),
		Description:   fmt.Sprintf("/%s has had no clicks since it was created. A new slug with a clearer call to action usually performs better.", stale.Slug),
		SuggestedSlug: stale.Slug + "-v2",
		TargetURL:     stale.URL,
		Priority:      PriorityMedium,
		ExpiresAt:     now.Add(7 * 24 * time.Hour),
		CreatedAt:     now,
	}, true
}

func audienceSuggestion(now time.Time, links []LinkActivity) (Recommendation, bool) {
	total := lo.SumBy(links, func(l LinkActivity) int64 { return l.Clicks })
	if total < audienceClickFloor {
		return Recommendation{}, false
	}

	byHost := lo.GroupBy(links, func(l LinkActivity) string {
		u, err := url.Parse(l.URL)
		if err != nil {
			return ""
		}
		return u.Hostname()
	})
	delete(byHost, "")
	if len(byHost) == 0 {
		return Recommendation{}, false
	}

	topHost := ""
	var topClicks int64 = -1
	for host, group := range byHost {
		clicks := lo.SumBy(group, func(l LinkActivity) int64 { return l.Clicks })
		if clicks > topClicks {
			topHost, topClicks = host, clicks
		}
	}

	return Recommendation{
		ID:            uuid.NewString(),
		Type:          TypeAudienceTarget,
		Title:         fmt.Sprintf("Your audience keeps coming back to %s", topHost),
		Description:   fmt.Sprintf("%d of your clicks landed on %s. A single memorable hub link gives that audience one door in.", topClicks, topHost),
		SuggestedSlug: "hub",
		TargetURL:     "https://" + topHost,
		Priority:      PriorityMedium,
		ExpiresAt:     now.Add(3 * 24 * time.Hour),
		CreatedAt:     now,
	}, true
}

var seasonalWindows = []struct {
	months []time.Month
	title  string
	desc   string
	slug   string
}{
	{
		months: []time.Month{time.November, time.December},
		title:  "Holiday shopping season",
		desc:   "Holiday traffic is ramping up. Campaign links created before the rush capture the most clicks.",
		slug:   "holiday-deals",
	},
	{
		months: []time.Month{time.June, time.July, time.August},
		title:  "Summer campaign window",
		desc:   "Summer engagement patterns favor short, memorable links. Prepare one for your summer promotion.",
		slug:   "summer",
	},
	{
		months: []time.Month{time.January},
		title:  "New year, new audience",
		desc:   "January brings resolution-driven traffic. A fresh link for your flagship content meets it halfway.",
		slug:   "fresh-start",
	},
}

func seasonalSuggestion(now time.Time) Recommendation {
	rec := Recommendation{
		ID:            uuid.NewString(),
		Type:          TypeSeasonal,
		Title:         "Plan your next seasonal push",
		Description:   "Seasonal campaigns perform best when the link exists before traffic arrives.",
		SuggestedSlug: "seasonal",
		Priority:      PriorityLow,
		ExpiresAt:     now.Add(14 * 24 * time.Hour),
		CreatedAt:     now,
	}

	for _, w := range seasonalWindows {
		if lo.Contains(w.months, now.Month()) {
			rec.Title = w.title
			rec.Description = w.desc
			rec.SuggestedSlug = w.slug
			break
		}
	}
	return rec
}
