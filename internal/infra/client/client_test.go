package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/critique/internal/domain/critique"
	"github.com/bryanwahyu/critique/internal/domain/share"
)

// 1x1 PNG; seeds to a "poster" selection with six issues.
const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type halfRand struct{}

func (halfRand) Float64() float64 { return 0.5 }

func newClient(url string) *Client {
	c := New(url+"/", "anon-key")
	c.FallbackDelay = 0
	c.Rand = halfRand{}
	return c
}

func TestAnalyze_ReturnsBackendResult(t *testing.T) {
	var got analyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"annotations":[{"id":1,"x":10,"y":20,"type":"visual","severity":"minor","title":"t","description":"d","fix":"f"}],"mode":"ai","modelUsed":"gpt-4o"}`))
	}))
	defer srv.Close()

	res := newClient(srv.URL).Analyze(context.Background(), pixelPNG, "pricing page")

	assert.Equal(t, pixelPNG, got.Image)
	assert.Equal(t, "pricing page", got.Context)
	assert.Equal(t, critique.ModeAI, res.Mode)
	assert.Equal(t, "gpt-4o", res.ModelUsed)
	assert.Equal(t, "UX", res.DesignType)
	require.Len(t, res.Annotations, 1)
}

func TestAnalyze_SimulatedIsPassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"annotations":null,"mode":"simulated"}`))
	}))
	defer srv.Close()

	res := newClient(srv.URL).Analyze(context.Background(), pixelPNG, "")
	assert.Equal(t, critique.ModeSimulated, res.Mode)
	assert.NotNil(t, res.Annotations)
	assert.Empty(t, res.Annotations)
}

func TestAnalyze_FallsBackToHeuristics(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Server error"}`))
		},
		"error body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"quota"}`))
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway</html>`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			res := newClient(srv.URL).Analyze(context.Background(), pixelPNG, "")
			assert.Equal(t, critique.ModeMock, res.Mode)
			assert.Equal(t, "POSTER", res.DesignType)
			require.Len(t, res.Annotations, 6)
			assert.Equal(t, 50.0, res.Annotations[0].X)
			assert.Equal(t, 50.0, res.Annotations[0].Y)
		})
	}
}

func TestAnalyze_UnreachableWaitsBeforeFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newClient(url)
	c.FallbackDelay = 30 * time.Millisecond
	start := time.Now()
	res := c.Analyze(context.Background(), pixelPNG, "")

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, critique.ModeMock, res.Mode)
}

func TestAnalyze_CancelledContextSkipsDelay(t *testing.T) {
	c := newClient("http://127.0.0.1:1")
	c.FallbackDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan critique.Result, 1)
	go func() { done <- c.Analyze(ctx, pixelPNG, "") }()

	select {
	case res := <-done:
		assert.Equal(t, critique.ModeMock, res.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("Analyze did not return after cancellation")
	}
}

func TestShareRoundTrip(t *testing.T) {
	stored := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/share":
			body, _ := io.ReadAll(r.Body)
			stored["abc"] = body
			w.Write([]byte(`{"shareId":"abc"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/share/abc":
			w.Write(stored["abc"])
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Report not found"}`))
		}
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	id, err := c.Share(context.Background(), share.Report{"designType": "UX", "analysisMode": "mock"})
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	report, err := c.GetShare(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "UX", report["designType"])

	_, err = c.GetShare(context.Background(), "missing")
	assert.ErrorIs(t, err, share.ErrNotFound)
}

func TestShare_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to share report"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Share(context.Background(), share.Report{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}
