package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/altkan/linkwise/internal"
	"github.com/altkan/linkwise/internal/recs"
)

type fakeService struct {
	recommendations []recs.Recommendation
	fetchErr        error
	createdLink     *internal.Link
	createErr       error
	dismissErr      error

	createCalls  []string
	dismissCalls []string
}

func (f *fakeService) GetRecommendations(ctx context.Context) ([]recs.Recommendation, error) {
	return f.recommendations, f.fetchErr
}

func (f *fakeService) CreateRecommendedLink(ctx context.Context, id string) (*internal.Link, error) {
	f.createCalls = append(f.createCalls, id)
	return f.createdLink, f.createErr
}

func (f *fakeService) DismissRecommendation(ctx context.Context, id string) error {
	f.dismissCalls = append(f.dismissCalls, id)
	return f.dismissErr
}

type recordNotifier struct {
	successes []string
	errors    []string
}

func (n *recordNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func sampleList() []recs.Recommendation {
	return []recs.Recommendation{
		{ID: "a", Type: recs.TypeTrendingTopic, Priority: recs.PriorityHigh, SuggestedSlug: "a-slug"},
		{ID: "b", Type: recs.TypeSeasonal, Priority: recs.PriorityLow, SuggestedSlug: "b-slug"},
		{ID: "c", Type: recs.TypeAudienceTarget, Priority: recs.PriorityMedium, SuggestedSlug: "c-slug"},
	}
}

func ids(list []recs.Recommendation) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

func TestRefreshReplacesListWholesale(t *testing.T) {
	svc := &fakeService{recommendations: sampleList()}
	p := New(svc, &recordNotifier{})

	p.Refresh(context.Background())

	if got := len(p.Recommendations()); got != 3 {
		t.Fatalf("got %d recommendations, want 3", got)
	}
	if p.Loading() {
		t.Error("loading flag should be false after refresh")
	}

	svc.recommendations = sampleList()[:1]
	p.Refresh(context.Background())
	if got := len(p.Recommendations()); got != 1 {
		t.Errorf("got %d recommendations after second refresh, want 1", got)
	}
}

func TestRefreshFallsBackOnError(t *testing.T) {
	svc := &fakeService{fetchErr: errors.New("service unavailable")}
	notifier := &recordNotifier{}
	p := New(svc, notifier)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	p.Refresh(context.Background())

	got := p.Recommendations()
	if len(got) != 4 {
		t.Fatalf("fallback list has %d items, want 4", len(got))
	}

	wantTypes := []recs.Type{
		recs.TypeTrendingTopic,
		recs.TypeCampaignOptimization,
		recs.TypeAudienceTarget,
		recs.TypeSeasonal,
	}
	wantPriorities := []recs.Priority{
		recs.PriorityHigh, recs.PriorityMedium, recs.PriorityMedium, recs.PriorityLow,
	}
	wantExpiries := []time.Duration{
		24 * time.Hour, 7 * 24 * time.Hour, 3 * 24 * time.Hour, 14 * 24 * time.Hour,
	}
	for i, r := range got {
		if r.Type != wantTypes[i] {
			t.Errorf("item %d type = %q, want %q", i, r.Type, wantTypes[i])
		}
		if r.Priority != wantPriorities[i] {
			t.Errorf("item %d priority = %q, want %q", i, r.Priority, wantPriorities[i])
		}
		if want := now.Add(wantExpiries[i]); !r.ExpiresAt.Equal(want) {
			t.Errorf("item %d expires at %v, want %v", i, r.ExpiresAt, want)
		}
	}

	if p.Loading() {
		t.Error("loading flag should be false after failed refresh")
	}
	if len(notifier.errors) != 0 {
		t.Errorf("fetch failure must not surface an error toast, got %v", notifier.errors)
	}
}

func TestRefreshNilResultBecomesEmptyList(t *testing.T) {
	p := New(&fakeService{recommendations: nil}, &recordNotifier{})
	p.Refresh(context.Background())

	if got := p.Recommendations(); got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty list", got)
	}
}

func TestAcceptSuccessRemovesExactlyOne(t *testing.T) {
	link := &internal.Link{ID: 42, Slug: "a-slug", URL: "https://example.com"}
	svc := &fakeService{recommendations: sampleList(), createdLink: link}
	notifier := &recordNotifier{}
	p := New(svc, notifier)

	var callbacks []internal.Link
	p.SetOnLinkCreated(func(l internal.Link) { callbacks = append(callbacks, l) })

	p.Refresh(context.Background())
	p.Accept(context.Background(), "a")

	got := ids(p.Recommendations())
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("list after accept = %v, want [b c]", got)
	}
	if len(callbacks) != 1 {
		t.Fatalf("callback fired %d times, want 1", len(callbacks))
	}
	if callbacks[0].ID != 42 || callbacks[0].Slug != "a-slug" {
		t.Errorf("callback payload = %+v, want the created link", callbacks[0])
	}
	if len(notifier.successes) != 1 {
		t.Errorf("got %d success toasts, want 1", len(notifier.successes))
	}
	if p.ProcessingID() != "" {
		t.Error("processing id should be cleared after accept")
	}
}

func TestAcceptFailureKeepsList(t *testing.T) {
	tests := []struct {
		name string
		svc  *fakeService
	}{
		{"service error", &fakeService{recommendations: sampleList(), createErr: errors.New("boom")}},
		{"nil link without error", &fakeService{recommendations: sampleList()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordNotifier{}
			p := New(tt.svc, notifier)
			var fired bool
			p.SetOnLinkCreated(func(internal.Link) { fired = true })

			p.Refresh(context.Background())
			p.Accept(context.Background(), "a")

			if got := ids(p.Recommendations()); len(got) != 3 || got[0] != "a" {
				t.Errorf("list after failed accept = %v, want unchanged [a b c]", got)
			}
			if fired {
				t.Error("callback must not fire on failure")
			}
			if len(notifier.errors) != 1 {
				t.Errorf("got %d error toasts, want 1", len(notifier.errors))
			}
			if p.ProcessingID() != "" {
				t.Error("processing id should be cleared after failure")
			}
		})
	}
}

func TestAcceptUnknownIDIsNoop(t *testing.T) {
	svc := &fakeService{recommendations: sampleList()}
	p := New(svc, &recordNotifier{})
	p.Refresh(context.Background())

	p.Accept(context.Background(), "missing")

	if len(svc.createCalls) != 0 {
		t.Errorf("service called %d times for unknown id, want 0", len(svc.createCalls))
	}
}

func TestAcceptWhileProcessingSameIDIsNoop(t *testing.T) {
	svc := &fakeService{recommendations: sampleList()}
	p := New(svc, &recordNotifier{})
	p.Refresh(context.Background())

	p.mu.Lock()
	p.processingID = "a"
	p.mu.Unlock()

	p.Accept(context.Background(), "a")

	if len(svc.createCalls) != 0 {
		t.Errorf("second accept for an in-flight id reached the service %d times, want 0", len(svc.createCalls))
	}
}

func TestDismiss(t *testing.T) {
	t.Run("success removes the item", func(t *testing.T) {
		svc := &fakeService{recommendations: sampleList()}
		notifier := &recordNotifier{}
		p := New(svc, notifier)
		p.Refresh(context.Background())

		p.Dismiss(context.Background(), "b")

		if got := ids(p.Recommendations()); len(got) != 2 || got[0] != "a" || got[1] != "c" {
			t.Errorf("list after dismiss = %v, want [a c]", got)
		}
		if len(notifier.successes) != 1 {
			t.Errorf("got %d success toasts, want 1", len(notifier.successes))
		}
	})

	t.Run("failure keeps the item", func(t *testing.T) {
		svc := &fakeService{recommendations: sampleList(), dismissErr: errors.New("boom")}
		notifier := &recordNotifier{}
		p := New(svc, notifier)
		p.Refresh(context.Background())

		p.Dismiss(context.Background(), "b")

		if got := len(p.Recommendations()); got != 3 {
			t.Errorf("list has %d items after failed dismiss, want 3", got)
		}
		if len(notifier.errors) != 1 {
			t.Errorf("got %d error toasts, want 1", len(notifier.errors))
		}
	})

	t.Run("absent id is idempotent", func(t *testing.T) {
		svc := &fakeService{recommendations: sampleList()}
		p := New(svc, &recordNotifier{})
		p.Refresh(context.Background())

		p.Dismiss(context.Background(), "already-gone")

		if got := len(p.Recommendations()); got != 3 {
			t.Errorf("list has %d items, want 3 unchanged", got)
		}
	})
}

func TestViewModes(t *testing.T) {
	p := New(&fakeService{}, &recordNotifier{})

	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()
	if v := p.View(); v.Mode != ModeLoading || v.Skeleton != SkeletonCount {
		t.Errorf("loading view = %+v, want mode %q with %d skeletons", v, ModeLoading, SkeletonCount)
	}

	p.mu.Lock()
	p.loading = false
	p.mu.Unlock()
	if v := p.View(); v.Mode != ModeEmpty {
		t.Errorf("empty view mode = %q, want %q", v.Mode, ModeEmpty)
	}

	p.mu.Lock()
	p.recommendations = sampleList()
	p.processingID = "c"
	p.mu.Unlock()

	v := p.View()
	if v.Mode != ModeList {
		t.Fatalf("view mode = %q, want %q", v.Mode, ModeList)
	}
	if !v.Items[2].Processing {
		t.Error("item c should be marked processing")
	}
	if v.Items[0].Processing || v.Items[1].Processing {
		t.Error("only the in-flight item may be marked processing")
	}
}

func TestSummaryPartitionsList(t *testing.T) {
	tests := []struct {
		name       string
		priorities []recs.Priority
		want       Summary
	}{
		{
			name:       "mixed tiers",
			priorities: []recs.Priority{recs.PriorityHigh, recs.PriorityLow, recs.PriorityMedium, recs.PriorityHigh},
			want:       Summary{Total: 4, High: 2, Medium: 1, Low: 1},
		},
		{
			name:       "unrecognized priority counts toward total only",
			priorities: []recs.Priority{recs.PriorityHigh, "urgent", recs.PriorityLow},
			want:       Summary{Total: 3, High: 1, Medium: 0, Low: 1},
		},
		{
			name:       "single item",
			priorities: []recs.Priority{recs.PriorityMedium},
			want:       Summary{Total: 1, Medium: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]recs.Recommendation, len(tt.priorities))
			for i, pr := range tt.priorities {
				list[i] = recs.Recommendation{ID: string(rune('a' + i)), Priority: pr}
			}
			if got := summarize(list); got != tt.want {
				t.Errorf("summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// End-to-end pass over the panel contract: fetch two items, accept one,
// verify the list, summary, and callback all agree.
func TestAcceptScenario(t *testing.T) {
	link := &internal.Link{ID: 7, Slug: "fresh"}
	svc := &fakeService{
		recommendations: []recs.Recommendation{
			{ID: "a", Priority: recs.PriorityHigh},
			{ID: "b", Priority: recs.PriorityLow},
		},
		createdLink: link,
	}
	p := New(svc, &recordNotifier{})
	var created int
	p.SetOnLinkCreated(func(internal.Link) { created++ })

	p.Refresh(context.Background())
	if s := p.View().Summary; s.Total != 2 || s.High != 1 || s.Low != 1 {
		t.Fatalf("summary before accept = %+v, want total 2, 1 high, 1 low", s)
	}

	p.Accept(context.Background(), "a")

	got := p.Recommendations()
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("list after accept = %v, want [b]", ids(got))
	}
	if s := p.View().Summary; s.Total != 1 || s.High != 0 || s.Low != 1 {
		t.Errorf("summary after accept = %+v, want total 1, 0 high, 1 low", s)
	}
	if created != 1 {
		t.Errorf("callback fired %d times, want 1", created)
	}
}
