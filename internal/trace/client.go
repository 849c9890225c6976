package trace

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"purls/internal/log"
)

// Response is the part of a HEAD response the tracer looks at.
type Response struct {
	StatusCode int
	Location   string // raw Location header, unresolved
}

// Client issues a single HEAD request without following redirects.
// Transport failures, including cancellation, are returned as errors.
type Client interface {
	Head(ctx context.Context, rawURL string) (Response, error)
}

// ClientConfig configures the resty-backed client.
type ClientConfig struct {
	Timeout   time.Duration // per hop
	UserAgent string
}

// RestyClient implements Client on top of resty.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient builds a client whose redirect policy hands every 3xx
// response back to the caller instead of following it.
func NewRestyClient(cfg ClientConfig) *RestyClient {
	c := resty.New().
		SetTimeout(cfg.Timeout).
		SetLogger(log.Logger()).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &RestyClient{client: c}
}

func (c *RestyClient) Head(ctx context.Context, rawURL string) (Response, error) {
	resp, err := c.client.R().SetContext(ctx).Head(rawURL)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: resp.StatusCode(),
		Location:   resp.Header().Get("Location"),
	}, nil
}
