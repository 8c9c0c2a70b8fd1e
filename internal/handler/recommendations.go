package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/altkan/linkwise/internal"
	"github.com/altkan/linkwise/internal/notify"
	"github.com/altkan/linkwise/internal/recs"
	"github.com/altkan/linkwise/internal/repo"
	"github.com/altkan/linkwise/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type RecommendationHandler struct {
	recsRepo   *repo.RecommendationsRepo
	linksRepo  *repo.LinksRepo
	dismissals store.Dismissals
	feed       *notify.Feed
}

func NewRecommendationHandler(recsRepo *repo.RecommendationsRepo, linksRepo *repo.LinksRepo, dismissals store.Dismissals, feed *notify.Feed) *RecommendationHandler {
	return &RecommendationHandler{
		recsRepo:   recsRepo,
		linksRepo:  linksRepo,
		dismissals: dismissals,
		feed:       feed,
	}
}

type ListRecommendationsResponse struct {
	Recommendations []recs.Recommendation `json:"recommendations"`
}

type AcceptRecommendationResponse struct {
	Link LinkResponse `json:"link"`
}

// ListRecommendations returns active, undismissed suggestions in insertion
// order. An empty store is seeded from current link activity first, so a
// fresh install still has something to suggest.
func (h *RecommendationHandler) ListRecommendations(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now().UTC()

	items, err := h.recsRepo.ListActive(ctx, now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load recommendations")
	}

	if len(items) == 0 {
		items, err = h.seed(c, now)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate recommendations")
		}
	}

	visible := make([]recs.Recommendation, 0, len(items))
	for _, rec := range items {
		dismissed, err := h.dismissals.IsDismissed(ctx, rec.ID)
		if err != nil {
			log.Error().Err(err).Str("id", rec.ID).Msg("failed to check dismissal, hiding nothing")
			dismissed = false
		}
		if !dismissed {
			visible = append(visible, rec)
		}
	}

	return c.JSON(http.StatusOK, ListRecommendationsResponse{Recommendations: visible})
}

func (h *RecommendationHandler) seed(c echo.Context, now time.Time) ([]recs.Recommendation, error) {
	ctx := c.Request().Context()

	links, err := h.linksRepo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load link activity for generation")
		links = nil
	}

	activity := lo.Map(links, func(l *repo.Link, _ int) recs.LinkActivity {
		var lastClick *time.Time
		if l.LastClick != nil {
			t := l.LastClick.Time()
			lastClick = &t
		}
		return recs.LinkActivity{
			Slug:      l.Slug,
			URL:       l.URL,
			Clicks:    l.Clicks,
			CreatedAt: l.CreatedAt.Time(),
			LastClick: lastClick,
		}
	})

	batch := recs.Generate(now, activity)
	if err := h.recsRepo.InsertBatch(ctx, batch); err != nil {
		return nil, err
	}
	return h.recsRepo.ListActive(ctx, now)
}

// AcceptRecommendation creates a real short link from a suggestion and
// retires the suggestion. The created link is returned so the client can
// hand it to whoever is interested.
func (h *RecommendationHandler) AcceptRecommendation(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	rec, err := h.recsRepo.Get(ctx, id)
	switch {
	case errors.Is(err, internal.ErrRecommendationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "recommendation not found")
	case errors.Is(err, internal.ErrRecommendationAccepted):
		return echo.NewHTTPError(http.StatusConflict, "recommendation already accepted")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if rec.TargetURL == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "recommendation has no target url")
	}

	slug := rec.SuggestedSlug
	if slug == "" {
		slug = repo.GenerateSlug()
	}

	link, err := h.linksRepo.Create(ctx, slug, rec.TargetURL)
	if errors.Is(err, internal.ErrSlugExists) {
		// Suggested slug got taken in the meantime; fall back to a random one.
		link, err = h.linksRepo.Create(ctx, repo.GenerateSlug(), rec.TargetURL)
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to create link from recommendation")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create link")
	}

	if err := h.recsRepo.MarkAccepted(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("link created but recommendation not marked accepted")
	}

	h.feed.Success("Link /" + link.Slug + " created from recommendation")

	resp := LinkResponse{
		ID:        link.ID,
		Slug:      link.Slug,
		URL:       link.URL,
		CreatedAt: link.CreatedAt,
		Clicks:    link.Clicks,
		LastClick: link.LastClick,
	}
	return c.JSON(http.StatusCreated, AcceptRecommendationResponse{Link: resp})
}

// DismissRecommendation records a dismissal. Dismissing an id that is gone
// already is fine; the operation is idempotent by design.
func (h *RecommendationHandler) DismissRecommendation(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.dismissals.Dismiss(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to dismiss recommendation")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to dismiss recommendation")
	}

	h.feed.Success("Recommendation dismissed")

	return c.JSON(http.StatusOK, map[string]string{"status": "dismissed"})
}

type NotificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}

func (h *RecommendationHandler) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, NotificationsResponse{Notifications: h.feed.Recent(20)})
}
