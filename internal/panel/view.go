package panel

import (
	"github.com/altkan/linkwise/internal/recs"
	"github.com/samber/lo"
)

// Mode is which of the three panel states should be rendered.
type Mode string

const (
	ModeLoading Mode = "loading"
	ModeEmpty   Mode = "empty"
	ModeList    Mode = "list"
)

// SkeletonCount is how many placeholder cards the loading state shows.
const SkeletonCount = 3

// Item is one recommendation plus its derived presentation.
type Item struct {
	recs.Recommendation
	Style      recs.Style `json:"style"`
	TypeIcon   string     `json:"type_icon"`
	Processing bool       `json:"processing"`
}

// Summary is the live per-priority breakdown shown under the list.
// Unrecognized priorities count toward the total only.
type Summary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// View is a render-ready snapshot of the panel. Deriving it has no side
// effects and never reorders the list.
type View struct {
	Mode     Mode    `json:"mode"`
	Skeleton int     `json:"skeleton,omitempty"`
	Items    []Item  `json:"items"`
	Summary  Summary `json:"summary"`
}

// View computes the current view model: loading wins over everything, an
// empty list renders the empty state, otherwise the full list with summary.
func (p *Panel) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loading {
		return View{Mode: ModeLoading, Skeleton: SkeletonCount, Items: []Item{}}
	}

	if len(p.recommendations) == 0 {
		return View{Mode: ModeEmpty, Items: []Item{}}
	}

	items := lo.Map(p.recommendations, func(r recs.Recommendation, _ int) Item {
		return Item{
			Recommendation: r,
			Style:          recs.StyleFor(r.Priority),
			TypeIcon:       recs.IconFor(r.Type),
			Processing:     r.ID == p.processingID,
		}
	})

	return View{
		Mode:    ModeList,
		Items:   items,
		Summary: summarize(p.recommendations),
	}
}

func summarize(list []recs.Recommendation) Summary {
	return Summary{
		Total:  len(list),
		High:   lo.CountBy(list, func(r recs.Recommendation) bool { return r.Priority == recs.PriorityHigh }),
		Medium: lo.CountBy(list, func(r recs.Recommendation) bool { return r.Priority == recs.PriorityMedium }),
		Low:    lo.CountBy(list, func(r recs.Recommendation) bool { return r.Priority == recs.PriorityLow }),
	}
}
