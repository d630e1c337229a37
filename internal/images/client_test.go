package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func stubAPI(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		switch r.URL.Query().Get("s") {
		case "mojito":
			_, _ = w.Write([]byte(`{"drinks":[{"strDrink":"Mojito","strDrinkThumb":"https://img.example/mojito.jpg"}]}`))
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{"drinks":null}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCocktailImageHit(t *testing.T) {
	var hits int64
	c := NewClientWithBase(stubAPI(t, &hits).URL)

	img, ok := c.CocktailImage(context.Background(), "Mojito")
	if !ok || img != "https://img.example/mojito.jpg" {
		t.Fatalf("got %q, %v", img, ok)
	}
}

func TestCocktailImageMissAndErrorsAreSilent(t *testing.T) {
	var hits int64
	c := NewClientWithBase(stubAPI(t, &hits).URL)
	ctx := context.Background()

	if img, ok := c.CocktailImage(ctx, "Unknown Drink"); ok || img != "" {
		t.Errorf("miss should return empty: %q, %v", img, ok)
	}
	if img, ok := c.CocktailImage(ctx, "broken"); ok || img != "" {
		t.Errorf("server error should surface as a miss: %q, %v", img, ok)
	}
}

func TestCocktailImageCachesHitsAndMisses(t *testing.T) {
	var hits int64
	c := NewClientWithBase(stubAPI(t, &hits).URL)
	ctx := context.Background()

	c.CocktailImage(ctx, "Mojito")
	c.CocktailImage(ctx, "mojito") // case-insensitive cache key
	c.CocktailImage(ctx, "Unknown Drink")
	c.CocktailImage(ctx, "Unknown Drink")

	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Errorf("API hit %d times, want 2 (one per distinct name)", got)
	}
	if c.CacheSize() != 2 {
		t.Errorf("cache size = %d, want 2", c.CacheSize())
	}
}

func TestCocktailImagesParallel(t *testing.T) {
	var hits int64
	c := NewClientWithBase(stubAPI(t, &hits).URL)

	out := c.CocktailImages(context.Background(), []string{"Mojito", "Unknown Drink", "broken"})
	if len(out) != 1 {
		t.Fatalf("got %d hits, want 1: %v", len(out), out)
	}
	if out["Mojito"] != "https://img.example/mojito.jpg" {
		t.Errorf("mojito url = %q", out["Mojito"])
	}
}
