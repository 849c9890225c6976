package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClient_DoesNotFollowRedirects(t *testing.T) {
	type seenRequest struct{ method, agent string }
	seen := make(chan seenRequest, 1)
	var nextHit atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		seen <- seenRequest{method: r.Method, agent: r.UserAgent()}
		w.Header().Set("Location", "/next?x=1")
		w.WriteHeader(http.StatusMovedPermanently)
	})
	mux.HandleFunc("/next", func(w http.ResponseWriter, r *http.Request) {
		nextHit.Store(true)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewRestyClient(ClientConfig{Timeout: 2 * time.Second, UserAgent: "purls-test"})
	resp, err := client.Head(context.Background(), srv.URL+"/start")
	require.NoError(t, err)

	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/next?x=1", resp.Location)
	req := <-seen
	assert.Equal(t, http.MethodHead, req.method)
	assert.Equal(t, "purls-test", req.agent)
	assert.False(t, nextHit.Load())
}

func TestRestyClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := NewRestyClient(ClientConfig{Timeout: time.Second})
	_, err := client.Head(context.Background(), addr)
	assert.Error(t, err)
}

func TestRestyClient_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewRestyClient(ClientConfig{Timeout: time.Second})
	_, err := client.Head(ctx, srv.URL)
	assert.Error(t, err)
}
