package recsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/altkan/linkwise/internal/recs"
)

func TestGetRecommendations(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recommendations" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "admin" || pass != "secret" {
			t.Error("basic auth credentials not forwarded")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"recommendations": []recs.Recommendation{
				{ID: "r1", Type: recs.TypeTrendingTopic, Priority: recs.PriorityHigh, SuggestedSlug: "hot"},
				{ID: "r2", Type: recs.TypeSeasonal, Priority: recs.PriorityLow, SuggestedSlug: "sale"},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "admin", "secret")
	got, err := c.GetRecommendations(context.Background())
	if err != nil {
		t.Fatalf("GetRecommendations() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("got %v, want r1 then r2 in server order", got)
	}
}

func TestCreateRecommendedLink(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recommendations/r1/accept" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"link": map[string]any{"id": 5, "slug": "hot", "url": "https://example.com"},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "", "")
	link, err := c.CreateRecommendedLink(context.Background(), "r1")
	if err != nil {
		t.Fatalf("CreateRecommendedLink() error: %v", err)
	}
	if link.ID != 5 || link.Slug != "hot" {
		t.Errorf("link = %+v, want id 5 slug hot", link)
	}
}

func TestServerErrorsSurfaceMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "recommendation already accepted"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "", "")
	_, err := c.CreateRecommendedLink(context.Background(), "r1")
	if err == nil {
		t.Fatal("expected an error for a 409 response")
	}
	if want := "recommendation already accepted"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err, want)
	}
}

func TestDismissRecommendation(t *testing.T) {
	var called bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.URL.Path != "/api/recommendations/r2/dismiss" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "dismissed"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "", "")
	if err := c.DismissRecommendation(context.Background(), "r2"); err != nil {
		t.Fatalf("DismissRecommendation() error: %v", err)
	}
	if !called {
		t.Error("server was never called")
	}
}
