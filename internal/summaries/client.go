package summaries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Endpoint identifies one of the backend's fixed operations.
type Endpoint string

const (
	EndpointGetSummaries         Endpoint = "/get_summaries"
	EndpointGetSummary           Endpoint = "/get_summary"
	EndpointRemoveSummary        Endpoint = "/remove_summary"
	EndpointUpdateTitle          Endpoint = "/update_title"
	EndpointSummarizingCompleted Endpoint = "/summarizing_completed"
	EndpointUpload               Endpoint = "/upload"
)

// TokenSource supplies and forgets the bearer token.
// *credential.Store implements it.
type TokenSource interface {
	Token() (string, bool)
	Clear() error
}

// API defines the backend operations. *Client implements it; tests and the
// UI depend on the interface.
type API interface {
	ListSummaries(ctx context.Context) (json.RawMessage, error)
	GetSummary(ctx context.Context, id string) (json.RawMessage, error)
	RemoveSummary(ctx context.Context, audioFileName string) (json.RawMessage, error)
	RenameSummary(ctx context.Context, audioFileName, recordingName string) (json.RawMessage, error)
	CheckSummarizationStatus(ctx context.Context, query any) (json.RawMessage, error)
	UploadFile(ctx context.Context, upload Upload) (json.RawMessage, error)
	Logout() error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

const (
	defaultBaseURL   = "http://localhost:8008"
	defaultUserAgent = "scrivener/0.1"
	nullToken        = "null"
	defaultFormField = "file"
)

// Client talks to the summarization backend. It caches the bearer token after
// the first JSON request until Logout.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
	logger    *slog.Logger

	mu          sync.Mutex
	token       string
	tokenLoaded bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the backend at baseURL. tokens may be nil, in
// which case every request is sent anonymously.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		tokens:    tokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListSummaries enumerates all stored summaries.
func (c *Client) ListSummaries(ctx context.Context) (json.RawMessage, error) {
	return c.postJSON(ctx, EndpointGetSummaries, nil)
}

// GetSummary fetches one summary. A missing summary is an *APIError with
// status 404; see IsNotFound.
func (c *Client) GetSummary(ctx context.Context, id string) (json.RawMessage, error) {
	return c.postJSON(ctx, EndpointGetSummary, map[string]string{"id": id})
}

// RemoveSummary deletes the summary produced from audioFileName.
func (c *Client) RemoveSummary(ctx context.Context, audioFileName string) (json.RawMessage, error) {
	return c.postJSON(ctx, EndpointRemoveSummary, map[string]string{
		"audio_file_name": audioFileName,
	})
}

// RenameSummary updates the display title of a recording.
func (c *Client) RenameSummary(ctx context.Context, audioFileName, recordingName string) (json.RawMessage, error) {
	return c.postJSON(ctx, EndpointUpdateTitle, map[string]string{
		"audio_file_name": audioFileName,
		"recording_name":  recordingName,
	})
}

// CheckSummarizationStatus polls job completion. query is sent as-is; nil
// sends an empty object.
func (c *Client) CheckSummarizationStatus(ctx context.Context, query any) (json.RawMessage, error) {
	return c.postJSON(ctx, EndpointSummarizingCompleted, query)
}

// Upload describes a file submitted for transcription.
type Upload struct {
	FieldName string // form field for the file; defaults to "file"
	FileName  string
	Content   io.Reader
	Fields    map[string]string
}

// UploadFile submits audio as a multipart form. Only the Authorization header
// is added; the token is resolved fresh rather than from the client cache.
func (c *Client) UploadFile(ctx context.Context, upload Upload) (json.RawMessage, error) {
	if strings.TrimSpace(upload.FileName) == "" {
		return nil, fmt.Errorf("upload file name required")
	}
	if upload.Content == nil {
		return nil, fmt.Errorf("upload content required")
	}

	body, contentType, err := encodeMultipart(upload)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	headers.Set("Authorization", bearer(c.freshToken()))
	return c.dispatch(ctx, EndpointUpload, body, headers)
}

// Logout forgets the cached token and clears the persisted credential. It
// makes no network call.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.token = ""
	c.tokenLoaded = false
	c.mu.Unlock()

	if c.tokens == nil {
		return nil
	}
	return c.tokens.Clear()
}

func (c *Client) postJSON(ctx context.Context, endpoint Endpoint, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
	}
	// Nil payloads, typed or not, go out as an empty object.
	if bytes.Equal(body, []byte("null")) {
		body = []byte("{}")
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", bearer(c.cachedToken()))
	return c.dispatch(ctx, endpoint, bytes.NewReader(body), headers)
}

func (c *Client) dispatch(ctx context.Context, endpoint Endpoint, body io.Reader, headers http.Header) (json.RawMessage, error) {
	requestID := uuid.NewString()
	logger := c.logger.With(
		slog.String("endpoint", string(endpoint)),
		slog.String("request_id", requestID),
	)

	reqURL := c.resolve(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &TransportError{Endpoint: endpoint, Err: transportCause(err)}
		logger.Error("request failed", slog.Any("error", terr))
		return nil, terr
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Endpoint: endpoint, Err: err}
		logger.Error("read response failed", slog.Int("status", resp.StatusCode), slog.Any("error", terr))
		return nil, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    failureMessage(endpoint, resp.StatusCode, raw),
		}
		logger.Error("request rejected", slog.Int("status", resp.StatusCode), slog.Any("error", apiErr))
		return nil, apiErr
	}

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		perr := &ParseError{Endpoint: endpoint, Err: errors.New("response is not valid JSON")}
		if len(trimmed) == 0 {
			perr.Err = io.ErrUnexpectedEOF
		}
		logger.Error("decode response failed", slog.Int("status", resp.StatusCode), slog.Any("error", perr))
		return nil, perr
	}

	logger.Debug("request ok", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(trimmed)))
	return json.RawMessage(trimmed), nil
}

func (c *Client) cachedToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tokenLoaded || c.token == "" {
		token, ok := c.freshToken()
		if !ok {
			// Absent tokens are re-resolved on the next request.
			return "", false
		}
		c.token = token
		c.tokenLoaded = true
	}
	return c.token, true
}

func (c *Client) freshToken() (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	return c.tokens.Token()
}

func (c *Client) resolve(endpoint Endpoint) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + string(endpoint)
	return u.String()
}

func bearer(token string, ok bool) string {
	if !ok {
		token = nullToken
	}
	return "Bearer " + token
}

func failureMessage(endpoint Endpoint, status int, raw []byte) string {
	var body failureBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != nil && *body.Message != "" {
		return *body.Message
	}
	return defaultFailureMessage(endpoint, status)
}

func encodeMultipart(upload Upload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	keys := make([]string, 0, len(upload.Fields))
	for k := range upload.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writer.WriteField(k, upload.Fields[k]); err != nil {
			return nil, "", err
		}
	}

	field := strings.TrimSpace(upload.FieldName)
	if field == "" {
		field = defaultFormField
	}
	part, err := writer.CreateFormFile(field, upload.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
