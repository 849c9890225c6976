package trace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_NoRedirect(t *testing.T) {
	client := newFakeClient()
	res := NewTracer(client).Trace(context.Background(), "http://site.test/ok", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://site.test/ok"}, res.RedirectChain)
	assert.Equal(t, "http://site.test/ok", res.FinalURL)
	assert.Equal(t, 0, res.RedirectCount)
	require.Len(t, res.Hops, 1)
	assert.Equal(t, 200, res.Hops[0].StatusCode)
	assert.Equal(t, 1, client.callCount())
}

func TestTrace_FollowsChain(t *testing.T) {
	client := newFakeClient().
		redirect("http://site.test/a", "/b?x=1", http.StatusMovedPermanently).
		redirect("http://site.test/b?x=1", "https://other.test/c", http.StatusFound).
		redirect("https://other.test/c", "d", http.StatusTemporaryRedirect)

	res := NewTracer(client).Trace(context.Background(), "http://site.test/a", DefaultMaxRedirects)

	assert.Equal(t, []string{
		"http://site.test/a",
		"http://site.test/b?x=1",
		"https://other.test/c",
		"https://other.test/d",
	}, res.RedirectChain)
	assert.Equal(t, 3, res.RedirectCount)
	assert.Equal(t, "https://other.test/d", res.FinalURL)
	require.Len(t, res.Hops, 4)
	assert.Equal(t, "/b?x=1", res.Hops[0].Location)
	assert.Equal(t, 200, res.Hops[3].StatusCode)
}

func TestTrace_SelfRedirectStopsAtBound(t *testing.T) {
	client := newFakeClient().redirect("http://site.test/loop", "/loop", http.StatusFound)

	res := NewTracer(client).Trace(context.Background(), "http://site.test/loop", 3)

	assert.Len(t, res.RedirectChain, 4)
	assert.Equal(t, 3, res.RedirectCount)
	for _, u := range res.RedirectChain {
		assert.Equal(t, "http://site.test/loop", u)
	}
	assert.Equal(t, 3, client.callCount())
}

func TestTrace_ZeroMaxRedirects(t *testing.T) {
	client := newFakeClient().redirect("http://site.test/a", "/b", http.StatusFound)

	res := NewTracer(client).Trace(context.Background(), "http://site.test/a", 0)

	assert.Equal(t, []string{"http://site.test/a"}, res.RedirectChain)
	assert.Equal(t, 0, client.callCount())
}

func TestTrace_RedirectWithoutLocation(t *testing.T) {
	client := newFakeClient().redirect("http://site.test/a", "", http.StatusFound)

	res := NewTracer(client).Trace(context.Background(), "http://site.test/a", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://site.test/a"}, res.RedirectChain)
	assert.Equal(t, 0, res.RedirectCount)
	assert.Equal(t, http.StatusFound, res.Hops[0].StatusCode)
}

func TestTrace_UnparseableLocation(t *testing.T) {
	client := newFakeClient().redirect("http://site.test/a", "http://[::1", http.StatusFound)

	res := NewTracer(client).Trace(context.Background(), "http://site.test/a", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://site.test/a"}, res.RedirectChain)
	assert.NotEmpty(t, res.Hops[0].Error)
}

func TestTrace_TransportFailureKeepsPartialChain(t *testing.T) {
	client := newFakeClient().redirect("http://site.test/a", "/b", http.StatusFound)
	client.errs["http://site.test/b"] = errors.New("dial tcp: connection refused")

	res := NewTracer(client).Trace(context.Background(), "http://site.test/a", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://site.test/a", "http://site.test/b"}, res.RedirectChain)
	assert.Equal(t, 1, res.RedirectCount)
	require.Len(t, res.Hops, 2)
	assert.Contains(t, res.Hops[1].Error, "connection refused")
}

func TestTrace_FailureOnFirstRequest(t *testing.T) {
	client := newFakeClient()
	client.errs["http://unreachable.test/"] = errors.New("no such host")

	res := NewTracer(client).Trace(context.Background(), "http://unreachable.test/", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://unreachable.test/"}, res.RedirectChain)
	assert.Equal(t, "http://unreachable.test/", res.FinalURL)
	assert.Equal(t, 0, res.RedirectCount)
}

func TestTrace_CancelledMidTrace(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := newFakeClient().
		redirect("http://site.test/a", "/b", http.StatusFound).
		redirect("http://site.test/b", "/c", http.StatusFound)
	client.onHead = func(rawURL string) {
		if rawURL == "http://site.test/b" {
			cancel()
		}
	}

	res := NewTracer(client).Trace(ctx, "http://site.test/a", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://site.test/a", "http://site.test/b"}, res.RedirectChain)
	assert.Equal(t, 2, client.callCount())
}

func TestTrace_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newFakeClient()
	res := NewTracer(client).Trace(ctx, "http://site.test/a", DefaultMaxRedirects)

	assert.Equal(t, []string{"http://site.test/a"}, res.RedirectChain)
	assert.Empty(t, res.Hops)
	assert.Equal(t, 0, client.callCount())
}

func TestTrace_HTTPServerLoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	tracer := NewTracer(NewRestyClient(ClientConfig{Timeout: 2 * time.Second}))
	res := tracer.Trace(context.Background(), srv.URL+"/loop", 3)

	assert.Len(t, res.RedirectChain, 4)
	assert.Equal(t, 3, res.RedirectCount)
	assert.Equal(t, srv.URL+"/loop", res.FinalURL)
}

func TestTrace_HTTPServerTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	tracer := NewTracer(NewRestyClient(ClientConfig{Timeout: 50 * time.Millisecond}))
	res := tracer.Trace(context.Background(), srv.URL+"/slow", DefaultMaxRedirects)

	assert.Equal(t, []string{srv.URL + "/slow"}, res.RedirectChain)
	require.Len(t, res.Hops, 1)
	assert.NotEmpty(t, res.Hops[0].Error)
}

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		current, location, want string
	}{
		{"http://e.com/a/b", "/c", "http://e.com/c"},
		{"http://e.com/a/b", "c?x=1", "http://e.com/a/c?x=1"},
		{"http://e.com/a", "https://other.com/", "https://other.com/"},
		{"https://e.com/a", "//cdn.e.com/x", "https://cdn.e.com/x"},
		{"http://e.com/a?q=1", "?q=2", "http://e.com/a?q=2"},
	}
	for _, tc := range tests {
		got, err := resolveLocation(tc.current, tc.location)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.location)
	}
}
