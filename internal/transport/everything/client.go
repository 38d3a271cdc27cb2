// Package everything is the HTTP client for the Everything search engine's
// built-in web server.
package everything

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/everseek/everseek"
	"github.com/everseek/everseek/internal/domain"
	"github.com/everseek/everseek/internal/metrics"
)

// Hit is a single engine result.
type Hit struct {
	Type     string // "file" or "folder"
	Name     string
	Path     string // containing directory
	Size     int64
	Modified time.Time
}

// Response is a parsed engine reply.
type Response struct {
	Total int
	Hits  []Hit
}

// Config holds the engine connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client queries the engine over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an engine client.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// wire DTOs: the engine encodes sizes and FILETIME timestamps as strings.
type wireResponse struct {
	TotalResults int       `json:"totalResults"`
	Results      []wireHit `json:"results"`
}

type wireHit struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         string `json:"size"`
	DateModified string `json:"date_modified"`
}

// Search executes the query and parses the JSON reply.
func (c *Client) Search(ctx context.Context, q *everseek.Query) (*Response, error) {
	start := time.Now()

	resp, err := c.get(ctx, q.Values())

	metrics.EngineRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EngineRequestsTotal.WithLabelValues("unavailable").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.EngineRequestsTotal.WithLabelValues("protocol_error").Inc()
		return nil, fmt.Errorf("engine returned status %d: %w", resp.StatusCode, domain.ErrEngineProtocol)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		metrics.EngineRequestsTotal.WithLabelValues("protocol_error").Inc()
		return nil, fmt.Errorf("decode engine response: %s: %w", err, domain.ErrEngineProtocol)
	}

	metrics.EngineRequestsTotal.WithLabelValues("success").Inc()

	out := &Response{
		Total: wire.TotalResults,
		Hits:  make([]Hit, 0, len(wire.Results)),
	}
	for _, h := range wire.Results {
		out.Hits = append(out.Hits, hitFromWire(h))
	}
	return out, nil
}

// Ping probes the engine with an empty zero-cost query.
func (c *Client) Ping(ctx context.Context) error {
	v := url.Values{}
	v.Set("search", "")
	v.Set("json", "1")
	v.Set("count", "1")

	resp, err := c.get(ctx, v)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine returned status %d: %w", resp.StatusCode, domain.ErrEngineProtocol)
	}
	return nil
}

func (c *Client) get(ctx context.Context, v url.Values) (*http.Response, error) {
	reqURL := c.baseURL + "/?" + v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build engine request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Engine request failed", zap.String("url", c.baseURL), zap.Error(err))
		return nil, classifyTransportError(err)
	}
	return resp, nil
}

// classifyTransportError maps connection-level failures to the
// "engine unavailable" sentinel so callers can distinguish a stopped
// engine from a broken reply.
func classifyTransportError(err error) error {
	var netErr net.Error
	var opErr *net.OpError
	if errors.As(err, &netErr) || errors.As(err, &opErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", err, domain.ErrEngineUnavailable)
	}
	return fmt.Errorf("engine request: %w", err)
}

// Windows FILETIME counts 100 ns ticks since 1601-01-01; Unix time starts
// 11644473600 s later.
const (
	ticksPerSecond  = 10_000_000
	filetimeToPosix = 116_444_736_000_000_000
)

func hitFromWire(h wireHit) Hit {
	size, _ := strconv.ParseInt(h.Size, 10, 64)
	return Hit{
		Type:     h.Type,
		Name:     h.Name,
		Path:     h.Path,
		Size:     size,
		Modified: filetimeToTime(h.DateModified),
	}
}

// filetimeToTime converts a decimal FILETIME string to time.Time.
// Returns the zero time for absent or malformed values.
func filetimeToTime(s string) time.Time {
	ft, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ft == 0 {
		return time.Time{}
	}
	posixTicks := ft - filetimeToPosix
	sec := posixTicks / ticksPerSecond
	nsec := (posixTicks % ticksPerSecond) * 100
	return time.Unix(sec, nsec).UTC()
}
