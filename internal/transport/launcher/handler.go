// Package launcher speaks the launcher's plugin protocol: line-delimited
// JSON-RPC requests on stdin, one reply line per request on stdout.
package launcher

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/everseek/everseek/internal/domain"
)

// maxLineSize bounds a single request line. Launcher queries are short;
// anything bigger is garbage on the pipe.
const maxLineSize = 64 * 1024

// searcher ranks a raw query (ISP).
type searcher interface {
	Search(ctx context.Context, raw string) ([]domain.Match, error)
}

// opener launches a selected result.
type opener interface {
	Launch(ctx context.Context, path string) error
}

// Request is one launcher frame.
type Request struct {
	Method     string   `json:"method"`
	Parameters []string `json:"parameters"`
}

// Action tells the launcher what to call back when a result is picked.
type Action struct {
	Method              string   `json:"method"`
	Parameters          []string `json:"parameters"`
	DontHideAfterAction bool     `json:"dontHideAfterAction"`
}

// ResultItem is one display entry.
type ResultItem struct {
	Title    string `json:"Title"`
	SubTitle string `json:"SubTitle"`
	IcoPath  string `json:"IcoPath"`
	Action   Action `json:"JsonRPCAction"`
}

// Response is one reply frame.
type Response struct {
	Result []ResultItem `json:"result"`
	Error  *Error       `json:"error,omitempty"`
}

// Error is a protocol-level failure the launcher can display.
type Error struct {
	Message string `json:"message"`
}

// Handler serves the plugin protocol on a reader/writer pair.
type Handler struct {
	search searcher
	launch opener
	logger *zap.Logger
}

// NewHandler creates a protocol handler.
func NewHandler(search searcher, launch opener, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{search: search, launch: launch, logger: logger}
}

// Serve reads frames until EOF or context cancellation. Requests are
// handled one at a time in arrival order: the launcher pipelines
// keystrokes, and replying out of order would interleave stale result
// sets. Malformed lines are logged and skipped.
func (h *Handler) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReaderSize(r, maxLineSize)
	out := bufio.NewWriter(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := in.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			// Oversized garbage on the pipe: drop it and resync at the
			// next newline rather than killing the loop.
			h.logger.Warn("Request line too long, skipping", zap.Int("limit", maxLineSize))
			derr := drainLine(in)
			if errors.Is(derr, io.EOF) {
				return nil
			}
			if derr != nil {
				return fmt.Errorf("read request: %w", derr)
			}
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read request: %w", err)
		}

		if frame := bytes.TrimSpace(line); len(frame) > 0 {
			var req Request
			if uerr := json.Unmarshal(frame, &req); uerr != nil {
				h.logger.Warn("Malformed request line", zap.Error(uerr))
			} else {
				resp := h.handle(ctx, req)
				if werr := writeFrame(out, resp); werr != nil {
					return fmt.Errorf("write reply: %w", werr)
				}
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// drainLine discards input up to and including the next newline.
func drainLine(in *bufio.Reader) error {
	for {
		_, err := in.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}

func (h *Handler) handle(ctx context.Context, req Request) Response {
	switch req.Method {
	case "query":
		return h.handleQuery(ctx, req.Parameters)
	case "launch":
		return h.handleLaunch(ctx, req.Parameters)
	case "context_menu":
		return Response{Result: []ResultItem{}}
	default:
		h.logger.Warn("Unknown method", zap.String("method", req.Method))
		return Response{Error: &Error{Message: "unknown method: " + req.Method}}
	}
}

func (h *Handler) handleQuery(ctx context.Context, params []string) Response {
	raw := ""
	if len(params) > 0 {
		raw = params[0]
	}

	matches, err := h.search.Search(ctx, raw)
	if err != nil {
		// A short term is the normal state while the user types.
		if errors.Is(err, domain.ErrQueryTooShort) {
			return Response{Result: []ResultItem{}}
		}
		h.logger.Error("Query failed", zap.Error(err))
		return Response{Error: &Error{Message: queryErrorMessage(err)}}
	}

	items := make([]ResultItem, 0, len(matches))
	for _, m := range matches {
		res := domain.ResultFromMatch(m)
		items = append(items, ResultItem{
			Title:    res.Title,
			SubTitle: res.SubTitle,
			IcoPath:  res.IcoPath,
			Action: Action{
				Method:              "launch",
				Parameters:          []string{res.Path},
				DontHideAfterAction: false,
			},
		})
	}
	return Response{Result: items}
}

func (h *Handler) handleLaunch(ctx context.Context, params []string) Response {
	if len(params) == 0 || params[0] == "" {
		return Response{Error: &Error{Message: "launch requires a path"}}
	}

	if err := h.launch.Launch(ctx, params[0]); err != nil {
		h.logger.Error("Launch failed", zap.String("path", params[0]), zap.Error(err))
		return Response{Error: &Error{Message: "failed to open " + params[0]}}
	}
	return Response{}
}

func queryErrorMessage(err error) string {
	if errors.Is(err, domain.ErrEngineUnavailable) {
		return "search engine is not running"
	}
	return "search failed"
}

func writeFrame(out *bufio.Writer, resp Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := out.Write(b); err != nil {
		return err
	}
	if err := out.WriteByte('\n'); err != nil {
		return err
	}
	return out.Flush()
}
