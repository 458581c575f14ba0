package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yildizm/ReviewRadar/internal/logger"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// maxErrorBody bounds how much of a failure body is read
const maxErrorBody = 64 * 1024

// Analyzer is the remote analysis service as seen by the view-model
type Analyzer interface {
	// AnalyzeReviews scrapes a product page and classifies its reviews
	AnalyzeReviews(ctx context.Context, productURL string, threshold float64) ([]review.Review, error)

	// AnalyzeSingleReview classifies one review
	AnalyzeSingleReview(ctx context.Context, text string, threshold float64, rating string) (review.Review, error)
}

// Client implements Analyzer over JSON/HTTP
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the client logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l.WithComponent("service")
	}
}

// New creates a new service client
func New(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.Endpoint)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, NewErrorWithCause(ErrTypeConfiguration, "invalid endpoint: "+config.Endpoint, err)
	}

	c := &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the configured base URL
func (c *Client) Endpoint() string {
	return c.baseURL.String()
}

// AnalyzeReviews posts {url, threshold} to /api/analyze-reviews
func (c *Client) AnalyzeReviews(ctx context.Context, productURL string, threshold float64) ([]review.Review, error) {
	req := &AnalyzeReviewsRequest{
		URL:       productURL,
		Threshold: threshold,
	}

	resp, err := c.post(ctx, PathAnalyzeReviews, req)
	if err != nil {
		return nil, err
	}

	if resp.AnalyzedReviews == nil {
		return []review.Review{}, nil
	}
	return resp.AnalyzedReviews, nil
}

// AnalyzeSingleReview posts {review, threshold, rating} to
// /api/analyze-single-review. Only the first returned review is used.
func (c *Client) AnalyzeSingleReview(ctx context.Context, text string, threshold float64, rating string) (review.Review, error) {
	req := &AnalyzeSingleReviewRequest{
		Review:    text,
		Threshold: threshold,
		Rating:    rating,
	}

	resp, err := c.post(ctx, PathAnalyzeSingleReview, req)
	if err != nil {
		return review.Review{}, err
	}

	if len(resp.AnalyzedReviews) == 0 {
		return review.Review{}, NewError(ErrTypeDecode, "response contained no analyzed reviews")
	}
	return resp.AnalyzedReviews[0], nil
}

// post performs one JSON request and decodes the success body
func (c *Client) post(ctx context.Context, path string, body any) (*AnalyzeResponse, error) {
	start := time.Now()
	endpoint := c.baseURL.JoinPath(path)

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, NewErrorWithCause(ErrTypeInternal, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(jsonData))
	if err != nil {
		return nil, NewErrorWithCause(ErrTypeInternal, "failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.log.DebugWithFields("POST %s", []logger.Field{logger.F("bytes", len(jsonData))}, endpoint.Path)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Debug("request to %s failed: %v", endpoint.Path, err)
		return nil, NewErrorWithCause(ErrTypeNetwork, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var errorResp ErrorResponse
		detail := ""
		if json.Unmarshal(data, &errorResp) == nil {
			detail = errorResp.Message()
		}
		c.log.InfoWithFields("%s rejected", []logger.Field{logger.Status(resp.StatusCode), logger.F("detail", detail)}, endpoint.Path)
		return nil, NewStatusError(resp.StatusCode, detail)
	}

	var result AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, NewErrorWithCause(ErrTypeDecode, "failed to decode response", err)
	}

	c.log.DebugWithFields("%s completed", []logger.Field{
		logger.Count(len(result.AnalyzedReviews)),
		logger.Duration(time.Since(start)),
	}, endpoint.Path)

	return &result, nil
}
