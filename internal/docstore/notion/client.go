// Package notion implements the docstore.Store interface against the hosted
// Notion API. Calls are single blocking round trips with no retry and no
// backoff; failures map onto the shared error taxonomy and propagate.
package notion

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

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/config"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
	"github.com/printflowhq/printflow-backend/pkg/metrics"
)

var (
	errAPIKeyRequired = errors.New("notion api key is required")
	errLoggerRequired = errors.New("notion logger is required")
)

// Client talks to the remote document API with centralized auth, logging,
// metrics, and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	version    string
	logger     *logger.Logger
	metrics    *metrics.RemoteCallMetrics
}

// NewClient initializes the API wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.NotionConfig, logg *logger.Logger, rm *metrics.RemoteCallMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		version:    cfg.Version,
		logger:     logg,
		metrics:    rm,
	}

	logg.Info(ctx, "notion client initialized")
	return c, nil
}

// Create appends a new record to the given collection.
func (c *Client) Create(ctx context.Context, collectionID string, props docstore.Properties) (*docstore.Record, error) {
	body := createPageRequest{
		Parent:     parentRef{DatabaseID: collectionID},
		Properties: props,
	}
	var record docstore.Record
	if err := c.do(ctx, opCreate, http.MethodPost, "/v1/pages", body, &record, map[string]any{
		"collection_id": collectionID,
	}); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies a partial property update; unspecified fields are untouched.
func (c *Client) Update(ctx context.Context, recordID string, props docstore.Properties) (*docstore.Record, error) {
	body := updatePageRequest{Properties: props}
	var record docstore.Record
	if err := c.do(ctx, opUpdate, http.MethodPatch, "/v1/pages/"+recordID, body, &record, map[string]any{
		"record_id": recordID,
	}); err != nil {
		return nil, err
	}
	return &record, nil
}

// Retrieve fetches a single record by id.
func (c *Client) Retrieve(ctx context.Context, recordID string) (*docstore.Record, error) {
	var record docstore.Record
	if err := c.do(ctx, opRetrieve, http.MethodGet, "/v1/pages/"+recordID, nil, &record, map[string]any{
		"record_id": recordID,
	}); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindOne queries the collection and returns the first match or nil.
func (c *Client) FindOne(ctx context.Context, collectionID string, filter docstore.Filter) (*docstore.Record, error) {
	body := queryRequest{Filter: buildFilter(filter)}
	var resp queryResponse
	if err := c.do(ctx, opQuery, http.MethodPost, "/v1/databases/"+collectionID+"/query", body, &resp, map[string]any{
		"collection_id": collectionID,
		"property":      filter.Property,
	}); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

// List returns the first page of the collection.
func (c *Client) List(ctx context.Context, collectionID string, pageSize int) ([]docstore.Record, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	body := queryRequest{PageSize: pageSize}
	var resp queryResponse
	if err := c.do(ctx, opList, http.MethodPost, "/v1/databases/"+collectionID+"/query", body, &resp, map[string]any{
		"collection_id": collectionID,
		"page_size":     pageSize,
	}); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Archive flips the archive flag; records are never hard-deleted.
func (c *Client) Archive(ctx context.Context, recordID string) (*docstore.Record, error) {
	archived := true
	body := updatePageRequest{Archived: &archived}
	var record docstore.Record
	if err := c.do(ctx, opArchive, http.MethodPatch, "/v1/pages/"+recordID, body, &record, map[string]any{
		"record_id": recordID,
	}); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any, fields map[string]any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s request", op))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", op))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	c.log(ctx, "request", op, fields)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(op)
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("notion %s failed", op))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(op)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read %s response", op))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncFailure(op)
		apiErr := c.decodeAPIError(raw)
		c.log(ctx, "error", op, map[string]any{
			"status": resp.StatusCode,
			"error":  apiErr.Error(),
		})
		return pkgerrors.Wrap(domainCodeForStatus(resp.StatusCode), apiErr, fmt.Sprintf("notion %s failed", op))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.metrics.IncFailure(op)
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", op))
		}
	}

	c.metrics.IncSuccess(op)
	c.log(ctx, "response", op, map[string]any{"status": resp.StatusCode})
	return nil
}

func (c *Client) decodeAPIError(raw []byte) error {
	var payload apiErrorResponse
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == "" {
		return fmt.Errorf("remote error: %s", strings.TrimSpace(string(raw)))
	}
	return fmt.Errorf("%s: %s", payload.Code, payload.Message)
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = c.redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("notion %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("notion %s", phase))
	}
}

func (c *Client) redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "key", "secret", "email", "phone"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}
