package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driven"
	"github.com/forgeworks-labs/craftdex-cli/internal/logger"
)

const (
	catalogEndpoint   = "/v1/recipes"
	favoritesEndpoint = "/v1/favorites"

	// DefaultTimeout bounds each individual remote call.
	DefaultTimeout = 10 * time.Second

	// pushAttempts is the total number of delivery attempts for one
	// favorite push, including the first.
	pushAttempts = 3

	// pushInitialBackoff is the delay before the first push retry; it
	// doubles per attempt.
	pushInitialBackoff = 500 * time.Millisecond

	clientIDHeader = "X-Craftdex-Client-Id"
)

// Push rate limiting: sustained and burst toggles per second.
const (
	pushRatePerSecond = 5
	pushBurst         = 10
)

// Ensure Gateway implements the interface.
var _ driven.CatalogGateway = (*Gateway)(nil)

// Doer abstracts HTTP execution for dependency injection.
// The standard *http.Client satisfies this interface.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Gateway.
type Config struct {
	// BaseURL is the root of the remote service, e.g. "https://api.craftdex.dev".
	BaseURL string

	// Token authenticates favorites calls for the current user.
	// Empty disables authentication (public catalog only).
	Token string

	// ClientID identifies this install to the remote service.
	ClientID string

	// Timeout bounds each remote call. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport, used in tests. When nil, an
	// OAuth2 bearer-token client with Timeout is constructed.
	HTTPClient Doer
}

// Gateway is the HTTP client for the remote catalog and favorites
// services.
type Gateway struct {
	baseURL  string
	clientID string
	client   Doer
	limiter  *rate.Limiter

	// pushInitial is the first retry delay; shortened in tests.
	pushInitial time.Duration
}

// NewGateway creates a gateway from config.
func NewGateway(cfg Config) (*Gateway, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: remote base URL is required", domain.ErrInvalidInput)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		base := &http.Client{Timeout: timeout}
		if cfg.Token != "" {
			// Route the oauth2 transport through the timeout-bounded
			// base client.
			ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
			authed := oauth2.NewClient(ctx, src)
			authed.Timeout = timeout
			client = authed
		} else {
			client = base
		}
	}

	return &Gateway{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		clientID:    cfg.ClientID,
		client:      client,
		limiter:     rate.NewLimiter(rate.Limit(pushRatePerSecond), pushBurst),
		pushInitial: pushInitialBackoff,
	}, nil
}

// recipePayload is the wire form of a catalog recipe.
type recipePayload struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Quantity    int      `json:"quantity"`
	Category    string   `json:"category"`
}

// favoritesPayload is the wire form of the user's favorite set.
type favoritesPayload struct {
	RecipeIDs []int `json:"recipe_ids"`
}

// favoriteChange is the wire form of a single favorite toggle.
type favoriteChange struct {
	Favorite bool `json:"favorite"`
}

// FetchCatalog retrieves the full current catalog.
func (g *Gateway) FetchCatalog(ctx context.Context) ([]domain.Recipe, error) {
	var payload []recipePayload
	if err := g.getJSON(ctx, catalogEndpoint, &payload); err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(payload))
	for _, p := range payload {
		recipes = append(recipes, domain.Recipe{
			ID:          p.ID,
			Name:        p.Name,
			Image:       p.Image,
			Ingredients: p.Ingredients,
			Quantity:    p.Quantity,
			Category:    p.Category,
		})
	}
	return recipes, nil
}

// FetchFavoriteIDs retrieves the user's favorite IDs as currently known
// to the remote service.
func (g *Gateway) FetchFavoriteIDs(ctx context.Context) ([]int, error) {
	var payload favoritesPayload
	if err := g.getJSON(ctx, favoritesEndpoint, &payload); err != nil {
		return nil, err
	}
	return payload.RecipeIDs, nil
}

// PushFavorite delivers one favorite toggle. Transient failures are
// retried with exponential backoff up to pushAttempts total attempts;
// remote rejections are not retried. The call is idempotent on the
// remote side: it carries the desired final state, not a delta.
func (g *Gateway) PushFavorite(ctx context.Context, recipeID int, favorite bool) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: waiting for push slot: %w", domain.ErrNetwork, err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.pushInitial
	bo.RandomizationFactor = 0 // base delay doubles, no jitter
	bo.Multiplier = 2

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := g.putFavorite(ctx, recipeID, favorite)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrNetwork) && attempt < pushAttempts {
			logger.Debug("Favorite push attempt %d/%d failed: %v", attempt, pushAttempts, err)
			return err // transient, backoff retries
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(bo, ctx))

	if err != nil {
		logger.Warn("Favorite push for recipe %d gave up after %d attempt(s): %v", recipeID, attempt, err)
		return err
	}
	return nil
}

// putFavorite performs a single PUT of the desired favorite state.
func (g *Gateway) putFavorite(ctx context.Context, recipeID int, favorite bool) error {
	body, err := json.Marshal(favoriteChange{Favorite: favorite})
	if err != nil {
		return fmt.Errorf("marshaling favorite change: %w", err)
	}

	url := fmt.Sprintf("%s%s/%d", g.baseURL, favoritesEndpoint, recipeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	return classifyStatus(resp.StatusCode)
}

// getJSON performs a GET and decodes the JSON response into out.
func (g *Gateway) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", domain.ErrRemote, endpoint, err)
	}
	return nil
}

// setHeaders attaches the per-install identity header.
func (g *Gateway) setHeaders(req *http.Request) {
	if g.clientID != "" {
		req.Header.Set(clientIDHeader, g.clientID)
	}
}

// classifyStatus maps an HTTP status onto the domain error taxonomy.
// Throttling and server-side failures count as transient; other non-2xx
// statuses are remote rejections.
func classifyStatus(code int) error {
	switch {
	case code/100 == 2:
		return nil
	case code == http.StatusTooManyRequests || code/100 == 5:
		return fmt.Errorf("%w: server returned %d", domain.ErrNetwork, code)
	default:
		return fmt.Errorf("%w: server returned %d", domain.ErrRemote, code)
	}
}
