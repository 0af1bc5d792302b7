package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tnguye65/pokecollection/internal/client/models"
)

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient builds a client for the API at baseURL. The cookie jar
// holds the session between calls.
func NewRESTClient(baseURL string, timeout time.Duration) (*RESTClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// do sends body as JSON and decodes a 2xx response into out when out is
// non-nil. 204 leaves out untouched.
func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if body.Error != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, body.Error)
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		if body.Error != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, body.Error)
		}
		return ErrNotFound
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *RESTClient) Register(ctx context.Context, username, email string, password []byte) (*models.Account, error) {
	req := map[string]string{"username": username, "email": email, "password": string(password)}
	var acc models.Account
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *RESTClient) Login(ctx context.Context, email string, password []byte) (*models.Account, error) {
	req := map[string]string{"email": email, "password": string(password)}
	var acc models.Account
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *RESTClient) Me(ctx context.Context) (*models.Account, error) {
	var acc models.Account
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *RESTClient) AddCard(ctx context.Context, req models.AddCardRequest) (*models.CollectionItem, error) {
	var item models.CollectionItem
	if err := c.do(ctx, http.MethodPost, "/collection", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListCollection returns an empty slice when the server answers 204.
func (c *RESTClient) ListCollection(ctx context.Context) ([]models.CollectionItem, error) {
	items := []models.CollectionItem{}
	if err := c.do(ctx, http.MethodGet, "/collection", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) UpdateItem(ctx context.Context, id int64, req models.UpdateItemRequest) (*models.CollectionItem, error) {
	var item models.CollectionItem
	if err := c.do(ctx, http.MethodPut, "/collection/"+strconv.FormatInt(id, 10), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *RESTClient) RemoveItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/collection/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *RESTClient) Stats(ctx context.Context) (*models.Stats, error) {
	var s models.Stats
	if err := c.do(ctx, http.MethodGet, "/collection/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RESTClient) SearchCards(ctx context.Context, name string) ([]models.CardBrief, error) {
	cards := []models.CardBrief{}
	if err := c.do(ctx, http.MethodGet, "/cards?name="+url.QueryEscape(name), nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *RESTClient) GetCard(ctx context.Context, id string) (*models.Card, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("card id is empty")
	}
	var card models.Card
	if err := c.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(id), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
