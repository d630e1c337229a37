// internal/images/client.go
//
// TheCocktailDB lookups for memory-game card art.
// Responsibilities:
//   - Resolve a cocktail display name to zero-or-one image URL.
//   - Cache results (including misses) per process so repeated boards
//     don't re-hit the API.
//   - Stay strictly best-effort: any failure is logged at debug level
//     and surfaces as "no image"; the emoji on the card face is always
//     the fallback. Nothing here may ever block or corrupt game state.

package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public TheCocktailDB v1 endpoint.
const DefaultBaseURL = "https://www.thecocktaildb.com/api/json/v1/1"

// Client looks up cocktail images with an in-process cache.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.Mutex
	cache map[string]string // lowercased name → url; "" records a known miss
}

// NewClient returns a client against TheCocktailDB with a short timeout:
// image lookups are an enhancement and must fail fast.
func NewClient() *Client {
	return NewClientWithBase(DefaultBaseURL)
}

// NewClientWithBase is the injectable-endpoint constructor used by tests.
func NewClientWithBase(base string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(base, "/"),
		cache:      map[string]string{},
	}
}

// drinksResponse mirrors the search.php payload (drinks is null on no match).
type drinksResponse struct {
	Drinks []struct {
		Name  string `json:"strDrink"`
		Thumb string `json:"strDrinkThumb"`
	} `json:"drinks"`
}

// CocktailImage resolves one name. The second return is false when no
// image is available, for whatever reason.
func (c *Client) CocktailImage(ctx context.Context, name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return cached, cached != ""
	}
	c.mu.Unlock()

	img := c.fetch(ctx, key)

	c.mu.Lock()
	c.cache[key] = img
	c.mu.Unlock()
	return img, img != ""
}

// fetch performs the actual lookup; empty string means miss.
func (c *Client) fetch(ctx context.Context, name string) string {
	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("cocktail", name).Msg("image lookup failed")
		return ""
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Debug().Int("status", res.StatusCode).Str("cocktail", name).Msg("image lookup failed")
		return ""
	}
	var payload drinksResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		log.Debug().Err(err).Str("cocktail", name).Msg("image payload unreadable")
		return ""
	}
	if len(payload.Drinks) == 0 {
		return ""
	}
	return payload.Drinks[0].Thumb
}

// CocktailImages resolves several names in parallel and returns the
// hits. Misses are simply absent from the map.
func (c *Client) CocktailImages(ctx context.Context, names []string) map[string]string {
	type hit struct {
		name, url string
	}
	results := make(chan hit, len(names))
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			if img, ok := c.CocktailImage(ctx, n); ok {
				results <- hit{n, img}
			}
		}(name)
	}
	wg.Wait()
	close(results)

	out := map[string]string{}
	for h := range results {
		out[h.name] = h.url
	}
	return out
}

// CacheSize reports how many lookups (hits and misses) are cached.
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
