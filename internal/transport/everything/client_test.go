package everything

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/everseek/everseek"
	"github.com/everseek/everseek/internal/domain"
	"github.com/everseek/everseek/internal/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
}

func TestSearch_ParsesResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("json"); got != "1" {
			t.Errorf("json param = %q", got)
		}
		if got := r.URL.Query().Get("search"); got != "file: ext:exe *t*c*" {
			t.Errorf("search param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalResults": 2,
			"results": [
				{"type":"file","name":"tcmd.exe","path":"C:\\tools","size":"8123392","date_modified":"132537649420000000"},
				{"type":"file","name":"tc.exe","path":"C:\\bin","size":"1024","date_modified":"0"}
			]
		}`))
	})

	resp, err := c.Search(context.Background(), everseek.NewQuery("*t*c*").Extensions("exe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Total != 2 {
		t.Errorf("Total = %d", resp.Total)
	}
	if len(resp.Hits) != 2 {
		t.Fatalf("Hits = %d", len(resp.Hits))
	}

	h := resp.Hits[0]
	if h.Name != "tcmd.exe" || h.Path != `C:\tools` {
		t.Errorf("hit = %+v", h)
	}
	if h.Size != 8123392 {
		t.Errorf("Size = %d", h.Size)
	}
	if h.Modified.IsZero() {
		t.Error("Modified should be set")
	}
	if !resp.Hits[1].Modified.IsZero() {
		t.Error("zero FILETIME should map to zero time")
	}
}

func TestSearch_Unavailable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})

	_, err := c.Search(context.Background(), everseek.NewQuery("x"))
	if !errors.Is(err, domain.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestSearch_BadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Search(context.Background(), everseek.NewQuery("x"))
	if !errors.Is(err, domain.ErrEngineProtocol) {
		t.Fatalf("expected ErrEngineProtocol, got %v", err)
	}
}

func TestSearch_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.Search(context.Background(), everseek.NewQuery("x"))
	if !errors.Is(err, domain.ErrEngineProtocol) {
		t.Fatalf("expected ErrEngineProtocol, got %v", err)
	}
}

func engineDurationSamples(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.EngineRequestDuration.Write(&m); err != nil {
		t.Fatalf("read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestSearch_DurationRecordedOnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	before := engineDurationSamples(t)
	if _, err := c.Search(context.Background(), everseek.NewQuery("x")); err == nil {
		t.Fatal("expected error")
	}
	if got := engineDurationSamples(t); got != before+1 {
		t.Errorf("duration samples = %d, want %d (failed requests must be timed too)", got, before+1)
	}
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalResults":0,"results":[]}`))
	})

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFiletimeToTime(t *testing.T) {
	// 2021-01-01 00:00:00 UTC == 132539328000000000 FILETIME ticks.
	got := filetimeToTime("132539328000000000")
	want := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("filetimeToTime = %v, want %v", got, want)
	}

	if !filetimeToTime("").IsZero() {
		t.Error("empty string should map to zero time")
	}
	if !filetimeToTime("garbage").IsZero() {
		t.Error("malformed string should map to zero time")
	}
}
