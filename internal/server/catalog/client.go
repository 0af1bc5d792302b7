// Package catalog is a read-only client for the TCGdex card API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/logging"
)

const (
	DefaultBaseURL        = "https://api.tcgdex.net/v2/en"
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 10 * time.Second
)

// Config holds client configuration. Zero values fall back to the defaults.
type Config struct {
	BaseURL        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// Client fetches card metadata. It keeps no cache and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// New creates a catalog client.
func New(cfg Config, l logging.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	connect := cfg.ConnectTimeout
	if connect <= 0 {
		connect = DefaultConnectTimeout
	}
	read := cfg.ReadTimeout
	if read <= 0 {
		read = DefaultReadTimeout
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: connect}).DialContext,
		TLSHandshakeTimeout:   connect,
		ResponseHeaderTimeout: read,
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   connect + read,
		},
		logger: l.With("module", "catalog"),
	}
}

// GetCard returns the card with the given catalog id. A blank id or an
// upstream 404 yields common.ErrCardNotFound; any other failure yields
// common.ErrCatalogUnavailable.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.ErrCardNotFound
	}

	var card Card
	if err := c.getJSON(ctx, "/cards/"+url.PathEscape(id), &card); err != nil {
		c.logger.Warn(ctx, "card lookup failed", "card_id", id, "error", err)
		return nil, err
	}
	if card.ID == "" {
		return nil, common.ErrCardNotFound
	}

	return &card, nil
}

// SearchCards returns cards whose name matches. Blank names and empty
// results yield an empty slice.
func (c *Client) SearchCards(ctx context.Context, name string) ([]CardBrief, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []CardBrief{}, nil
	}

	var cards []CardBrief
	err := c.getJSON(ctx, "/cards?name="+url.QueryEscape(name), &cards)
	if err != nil {
		if errors.Is(err, common.ErrCardNotFound) {
			return []CardBrief{}, nil
		}
		c.logger.Warn(ctx, "card search failed", "name", name, "error", err)
		return nil, err
	}
	if cards == nil {
		cards = []CardBrief{}
	}

	c.logger.Debug(ctx, "card search", "name", name, "results", len(cards))
	return cards, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", common.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", common.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", common.ErrCatalogUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrCardNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: upstream status %s", common.ErrCatalogUnavailable, resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", common.ErrCatalogUnavailable, err)
	}

	return nil
}
