package status

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

	"github.com/unclesp1d3r/threadhash/lib/cracker"
	"github.com/unclesp1d3r/threadhash/lib/hashid"
	"github.com/unclesp1d3r/threadhash/lib/stats"
)

type fixedSource struct {
	status cracker.Status
}

func (f fixedSource) Snapshot() cracker.Status { return f.status }

func newFixedSource() fixedSource {
	var tally stats.Tally
	tally.Observe(hashid.MD5)
	tally.Observe(hashid.SHA512)
	tally.Complete(true)
	tally.Complete(false)
	tally.HashError()

	return fixedSource{status: cracker.Status{
		RunID:   "run-1",
		Threads: 2,
		Rows:    4,
		Claimed: 3,
		Running: true,
		Elapsed: 1500 * time.Millisecond,
		Global:  tally.Snapshot(),
	}}
}

// TestHandler tests the status routes.
func TestHandler(t *testing.T) {
	handler := NewServer("127.0.0.1:0", newFixedSource()).Handler()

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", expectedCode: http.StatusOK},
		{name: "status", method: http.MethodGet, path: "/api/status", expectedCode: http.StatusOK},
		{name: "wrong method", method: http.MethodPost, path: "/api/status", expectedCode: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: "/api/nope", expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

// TestHandleStatus verifies the JSON body of the status endpoint.
func TestHandleStatus(t *testing.T) {
	handler := NewServer("127.0.0.1:0", newFixedSource()).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, got.Running)
	assert.Equal(t, 4, got.Rows)
	assert.Equal(t, 3, got.Claimed)
	assert.Equal(t, int64(2), got.Processed)
	assert.Equal(t, int64(1), got.Cracked)
	assert.Equal(t, int64(1), got.Failed)
	assert.Equal(t, int64(1), got.HashErrors)
	assert.Equal(t, "50.00%", got.Progress)
	assert.InDelta(t, 1.5, got.ElapsedSeconds, 1e-9)
	assert.Equal(t, int64(1), got.Algorithms["MD5"])
	assert.Equal(t, int64(0), got.Algorithms["BCRYPT"])
}

// TestServer_StartShutdown runs the server on a real listener.
func TestServer_StartShutdown(t *testing.T) {
	srv := NewServer("127.0.0.1:0", newFixedSource())
	require.NoError(t, srv.Start(context.Background()))

	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "OK", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}

// TestServer_StartBadAddr verifies a bind failure is reported synchronously.
func TestServer_StartBadAddr(t *testing.T) {
	srv := NewServer("127.0.0.1:-1", newFixedSource())
	require.Error(t, srv.Start(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))
}
