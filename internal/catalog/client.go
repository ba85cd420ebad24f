package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/models"
)

const (
	// DefaultBaseURL is the PokeAPI pokemon resource
	DefaultBaseURL = "https://pokeapi.co/api/v2/pokemon"
	// DefaultListLimit asks the listing endpoint for effectively every entry
	DefaultListLimit = 9999
)

// Client represents a PokeAPI client
type Client struct {
	BaseURL    string
	ListLimit  int
	httpClient *http.Client
}

// NewClient creates a new catalog client
func NewClient(baseURL string, listLimit int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		ListLimit: listLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListNames fetches the full name list in API order
func (c *Client) ListNames(ctx context.Context) ([]string, error) {
	listURL := fmt.Sprintf("%s?limit=%d", c.BaseURL, c.ListLimit)

	var list models.PokemonList
	if err := c.getJSON(ctx, listURL, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog listing: %w", err)
	}

	names := make([]string, 0, len(list.Results))
	for _, res := range list.Results {
		names = append(names, res.Name)
	}

	slog.Debug("Fetched catalog listing", "count", list.Count, "names", len(names))

	return names, nil
}

// FetchPokemon fetches the detail record for one name
func (c *Client) FetchPokemon(ctx context.Context, name string) (models.Pokemon, error) {
	detailURL := fmt.Sprintf("%s/%s", c.BaseURL, url.PathEscape(name))

	var p models.Pokemon
	if err := c.getJSON(ctx, detailURL, &p); err != nil {
		return models.Pokemon{}, fmt.Errorf("failed to fetch %s: %w", name, err)
	}

	return p, nil
}

func (c *Client) getJSON(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
