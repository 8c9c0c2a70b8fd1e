// Package panel holds the client-side state for the personalized
// recommendations panel: the list fetched from the server, the loading flag,
// and the id of the suggestion currently being turned into a link. All
// failure handling is internal; operations report outcomes through the
// Notifier rather than returned errors.
package panel

import (
	"context"
	"sync"
	"time"

	"github.com/altkan/linkwise/internal"
	"github.com/altkan/linkwise/internal/recs"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Service is the recommendation backend as seen from the panel.
type Service interface {
	GetRecommendations(ctx context.Context) ([]recs.Recommendation, error)
	CreateRecommendedLink(ctx context.Context, id string) (*internal.Link, error)
	DismissRecommendation(ctx context.Context, id string) error
}

// Notifier receives user-facing outcome messages (toasts, in UI terms).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Panel owns the in-memory recommendation list. The backend remains the
// source of truth; the list is replaced wholesale on every refresh and only
// ever shrinks in between, when the server confirms an accept or dismiss.
type Panel struct {
	svc           Service
	notifier      Notifier
	onLinkCreated func(internal.Link)
	now           func() time.Time

	mu              sync.Mutex
	recommendations []recs.Recommendation
	loading         bool
	processingID    string
}

func New(svc Service, notifier Notifier) *Panel {
	return &Panel{
		svc:      svc,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetOnLinkCreated registers an optional callback invoked once per
// successfully created link, with the record the server returned.
func (p *Panel) SetOnLinkCreated(fn func(internal.Link)) {
	p.onLinkCreated = fn
}

// Refresh replaces the list with the server's current suggestions. A fetch
// failure is not surfaced to the user: the panel falls back to the fixed
// sample set so there is always something to show.
func (p *Panel) Refresh(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	got, err := p.svc.GetRecommendations(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch recommendations, using sample data")
		p.recommendations = recs.Fallback(p.now())
		return
	}
	if got == nil {
		got = []recs.Recommendation{}
	}
	p.recommendations = got
}

// Accept turns the recommendation with the given id into a real link. While
// the request is in flight the id is marked as processing, which disables
// the accept control for that item; a second Accept for the same id during
// that window is a no-op. The item is removed only after the server confirms.
func (p *Panel) Accept(ctx context.Context, id string) {
	p.mu.Lock()
	if p.processingID == id {
		p.mu.Unlock()
		return
	}
	if _, ok := lo.Find(p.recommendations, func(r recs.Recommendation) bool { return r.ID == id }); !ok {
		p.mu.Unlock()
		return
	}
	p.processingID = id
	p.mu.Unlock()

	link, err := p.svc.CreateRecommendedLink(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.processingID == id {
		p.processingID = ""
	}

	// A nil link without an error counts as a failure: the server did not
	// actually create anything the user could use.
	if err != nil || link == nil {
		log.Error().Err(err).Str("id", id).Msg("failed to create link from recommendation")
		p.notifier.Error("Failed to create link. Please try again.")
		return
	}

	p.removeLocked(id)
	p.notifier.Success("Link /" + link.Slug + " created")
	if p.onLinkCreated != nil {
		p.onLinkCreated(*link)
	}
}

// Dismiss tells the server the user is not interested and drops the item
// locally once the server acknowledges. Removal is idempotent: dismissing an
// id that is already gone leaves the list as it is.
func (p *Panel) Dismiss(ctx context.Context, id string) {
	err := p.svc.DismissRecommendation(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to dismiss recommendation")
		p.notifier.Error("Failed to dismiss recommendation")
		return
	}

	p.removeLocked(id)
	p.notifier.Success("Recommendation dismissed")
}

func (p *Panel) removeLocked(id string) {
	p.recommendations = lo.Reject(p.recommendations, func(r recs.Recommendation, _ int) bool {
		return r.ID == id
	})
}

// Recommendations returns a copy of the current list in server order.
func (p *Panel) Recommendations() []recs.Recommendation {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]recs.Recommendation, len(p.recommendations))
	copy(out, p.recommendations)
	return out
}

func (p *Panel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Panel) ProcessingID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processingID
}
