// Package vk implements a minimal client for the VK wall.get API, the
// source feed of the crossposter.
package vk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vkgram/vkgram/internal/config"
)

const apiVersion = "5.131"

// ErrEmptyResponse indicates the API answered without a usable payload.
// The run must abort without touching the watermark when this happens.
var ErrEmptyResponse = errors.New("vk: response payload missing")

// APIError is the error envelope VK returns instead of a response object.
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vk: api error %d: %s", e.Code, e.Message)
}

// Client fetches wall posts for a single owner.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	ownerID    int64
	token      string
	pageCount  int
}

// NewClient creates a wall.get client from the VK section of the
// application configuration.
func NewClient(cfg config.VKConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "vk_client"),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		ownerID:    cfg.OwnerID,
		token:      cfg.Token,
		pageCount:  cfg.PageCount,
	}
}

// FetchWall loads the newest page of the source wall. Items keep the
// API's newest-first order; callers reorder as needed.
func (c *Client) FetchWall(ctx context.Context) ([]Item, error) {
	form := url.Values{}
	form.Set("owner_id", strconv.FormatInt(c.ownerID, 10))
	form.Set("access_token", c.token)
	form.Set("offset", "0")
	form.Set("count", strconv.Itoa(c.pageCount))
	form.Set("v", apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/method/wall.get", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("vk: build wall.get request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vk: wall.get request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vk: read wall.get response: %w", err)
	}

	parsed, err := ParseWallResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched wall page",
		"owner_id", c.ownerID,
		"count", parsed.Count,
		"items", len(parsed.Items))
	return parsed.Items, nil
}

type envelope struct {
	Response *Response `json:"response"`
	Error    *APIError `json:"error"`
}

// ParseWallResponse validates the wall.get envelope. A missing response
// object is a fetch failure, not a zero-item page.
func ParseWallResponse(data []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("vk: decode wall.get response: %w", err)
	}
	if env.Error != nil {
		return nil, env.Error
	}
	if env.Response == nil {
		return nil, ErrEmptyResponse
	}
	return env.Response, nil
}
