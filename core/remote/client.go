package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// usersCollection is the store's built-in user-auth collection, the target
// of optional OAuth settings updates.
const usersCollection = "users"

// listPageSize is the page size used when draining the collection listing.
const listPageSize = 500

// Client defines the interface for the document store's admin HTTP API.
// Every authenticated call takes the Session explicitly; there is no
// ambient client state.
type Client interface {
	// HealthCheck issues an unauthenticated request to the health endpoint.
	HealthCheck(ctx context.Context) (Health, error)
	// Authenticate exchanges admin credentials for a session token.
	Authenticate(ctx context.Context, email, password string) (Session, error)
	// ListCollections returns the full collection list.
	ListCollections(ctx context.Context, s Session) ([]CollectionRecord, error)
	// GetCollection fetches a single collection by name.
	GetCollection(ctx context.Context, s Session, name string) (CollectionRecord, error)
	// CreateCollection creates a collection from a built payload.
	CreateCollection(ctx context.Context, s Session, payload map[string]any) (CollectionRecord, error)
	// UpdateCollection updates an existing collection by id.
	UpdateCollection(ctx context.Context, s Session, id string, payload map[string]any) (CollectionRecord, error)
	// UpdateAuthSettings applies OAuth settings to the built-in users
	// collection.
	UpdateAuthSettings(ctx context.Context, s Session, settings AuthSettings) error
}

// NewClient creates a new HTTP client for the store at the configured
// endpoint.
func NewClient(cfg Config) (Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", cfg.Endpoint)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Same strict transport timeouts as the storage client.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		base: base.String(),
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

type httpClient struct {
	base string
	http *http.Client
}

func (c *httpClient) HealthCheck(ctx context.Context) (Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/api/health", "", nil, &health); err != nil {
		return Health{}, err
	}
	return health, nil
}

func (c *httpClient) Authenticate(ctx context.Context, email, password string) (Session, error) {
	body := map[string]any{
		"identity": email,
		"password": password,
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admins/auth-with-password", "", body, &resp); err != nil {
		return Session{}, err
	}
	if resp.Token == "" {
		return Session{}, fmt.Errorf("authentication response carried no token")
	}
	return Session{Token: resp.Token}, nil
}

func (c *httpClient) ListCollections(ctx context.Context, s Session) ([]CollectionRecord, error) {
	var all []CollectionRecord
	// The store paginates; drain every page so the reconciler sees the
	// complete name set.
	for page := 1; ; page++ {
		var resp struct {
			Page       int                `json:"page"`
			PerPage    int                `json:"perPage"`
			TotalItems int                `json:"totalItems"`
			Items      []CollectionRecord `json:"items"`
		}
		path := fmt.Sprintf("/api/collections?page=%d&perPage=%d", page, listPageSize)
		if err := c.do(ctx, http.MethodGet, path, s.Token, nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Items...)
		if len(all) >= resp.TotalItems || len(resp.Items) == 0 {
			return all, nil
		}
	}
}

func (c *httpClient) GetCollection(ctx context.Context, s Session, name string) (CollectionRecord, error) {
	var rec CollectionRecord
	path := "/api/collections/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodGet, path, s.Token, nil, &rec); err != nil {
		return CollectionRecord{}, err
	}
	return rec, nil
}

func (c *httpClient) CreateCollection(ctx context.Context, s Session, payload map[string]any) (CollectionRecord, error) {
	var rec CollectionRecord
	if err := c.do(ctx, http.MethodPost, "/api/collections", s.Token, payload, &rec); err != nil {
		return CollectionRecord{}, err
	}
	return rec, nil
}

func (c *httpClient) UpdateCollection(ctx context.Context, s Session, id string, payload map[string]any) (CollectionRecord, error) {
	var rec CollectionRecord
	path := "/api/collections/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, s.Token, payload, &rec); err != nil {
		return CollectionRecord{}, err
	}
	return rec, nil
}

func (c *httpClient) UpdateAuthSettings(ctx context.Context, s Session, settings AuthSettings) error {
	body := map[string]any{
		"oauth2": map[string]any{
			"enabled": settings.Enabled,
			"providers": []map[string]any{
				{
					"name":         settings.Provider,
					"clientId":     settings.ClientID,
					"clientSecret": settings.ClientSecret,
				},
			},
		},
	}
	path := "/api/collections/" + usersCollection
	return c.do(ctx, http.MethodPatch, path, s.Token, body, nil)
}

// do performs one API request. A non-2xx status becomes an *APIError with
// the server's message when the body carries one.
func (c *httpClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}
