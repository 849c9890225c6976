package trace

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"purls/internal/log"
	"purls/internal/metrics"
	"purls/internal/model"
)

// DefaultMaxRedirects bounds a trace when the caller does not choose a limit.
const DefaultMaxRedirects = 10

// Tracer follows HTTP redirects one HEAD request at a time.
// It holds no per-trace state, so one Tracer can serve concurrent traces.
type Tracer struct {
	client Client
}

func NewTracer(client Client) *Tracer {
	return &Tracer{client: client}
}

// Trace follows redirects starting at rawURL, issuing at most maxRedirects
// requests that lead to a redirect. It never fails: transport errors and
// cancellation end the trace and the chain built so far is returned.
//
// The hop bound is the only loop protection; a URL redirecting to itself
// appears maxRedirects+1 times in the chain.
func (t *Tracer) Trace(ctx context.Context, rawURL string, maxRedirects int) model.TraceResult {
	current := rawURL
	chain := []string{current}
	var hops []model.Hop
	outcome := metrics.OutcomeLimit

	for len(chain)-1 < maxRedirects {
		if err := ctx.Err(); err != nil {
			log.Warn("trace of %s stopped: %v", rawURL, err)
			outcome = metrics.OutcomeFailure
			break
		}

		start := time.Now()
		resp, err := t.client.Head(ctx, current)
		metrics.HopDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			log.Warn("error fetching %s: %v", current, err)
			hops = append(hops, model.Hop{URL: current, Error: err.Error()})
			outcome = metrics.OutcomeFailure
			break
		}

		hop := model.Hop{URL: current, StatusCode: resp.StatusCode, Location: resp.Location}
		if !isRedirect(resp.StatusCode) {
			hops = append(hops, hop)
			outcome = metrics.OutcomeFinal
			break
		}
		if resp.Location == "" {
			hops = append(hops, hop)
			outcome = metrics.OutcomeNoLocation
			break
		}

		next, err := resolveLocation(current, resp.Location)
		if err != nil {
			log.Warn("unusable redirect from %s: %v", current, err)
			hop.Error = err.Error()
			hops = append(hops, hop)
			outcome = metrics.OutcomeNoLocation
			break
		}
		hops = append(hops, hop)
		chain = append(chain, next)
		current = next
	}

	metrics.ObserveTrace(outcome, len(chain)-1)
	log.Debug("traced %s: %d redirects (%s)", rawURL, len(chain)-1, outcome)

	return model.TraceResult{
		RedirectChain: chain,
		FinalURL:      chain[len(chain)-1],
		RedirectCount: len(chain) - 1,
		Hops:          hops,
	}
}

func isRedirect(status int) bool {
	return status >= 300 && status < 400
}

// resolveLocation resolves a possibly relative Location against the URL that returned it.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid Location %q: %w", location, err)
	}
	return base.ResolveReference(ref).String(), nil
}
