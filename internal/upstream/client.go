// internal/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/proglide/admin-console/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrSessionExpired is returned when the remote API answers 401 or 403.
var ErrSessionExpired = errors.New("upstream rejected the session")

// APIError is any other non-2xx answer of the remote API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: upstream returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: upstream returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Client talks to the remote Pro-glide API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListProducts(ctx context.Context, category models.Category) ([]models.Product, error) {
	var products []models.Product
	path := "/api/products?category=" + url.QueryEscape(string(category))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, input *models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", token, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, input *models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), token, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users", "", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *Client) ListSubscriptions(ctx context.Context) ([]models.UserSubscription, error) {
	var users []models.UserSubscription
	if err := c.do(ctx, http.MethodGet, "/api/users/subscriptions", "", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.UserSubscription{}
	}
	return users, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Milliseconds(),
	}).Debug("Upstream call")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrSessionExpired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls a message out of common error bodies, falling back to
// the raw text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
