package trace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"purls/internal/log"
	"purls/internal/metrics"
	"purls/internal/model"
	"purls/internal/params"
)

// Checker composes an edited URL, traces it and diffs origin against destination.
type Checker struct {
	tracer *Tracer
}

func NewChecker(tracer *Tracer) *Checker {
	return &Checker{tracer: tracer}
}

// Check returns false when d composes to an empty URL; nothing is traced then.
func (c *Checker) Check(ctx context.Context, d model.DecomposedURL, maxRedirects int) (*model.Report, bool) {
	composed := params.ComposeURL(d)
	if composed == "" {
		return nil, false
	}

	res := c.tracer.Trace(ctx, composed, maxRedirects)
	diff := Diff(composed, res.FinalURL)
	if len(diff.Lost) > 0 {
		metrics.LostParamsTotal.Add(float64(len(diff.Lost)))
		log.Info("%d parameter(s) lost between %s and %s", len(diff.Lost), composed, res.FinalURL)
	}

	return &model.Report{
		URL:         composed,
		TraceResult: res,
		ParamDiff:   diff,
	}, true
}

// CheckURL decomposes raw and checks the normalized result.
func (c *Checker) CheckURL(ctx context.Context, raw string, maxRedirects int) (*model.Report, bool) {
	return c.Check(ctx, params.Decompose(raw), maxRedirects)
}

// CheckAll checks independent URLs concurrently, at most concurrency at a time.
// reports[i] belongs to raws[i] and is nil when raws[i] had nothing to check.
func (c *Checker) CheckAll(ctx context.Context, raws []string, maxRedirects, concurrency int) []*model.Report {
	reports := make([]*model.Report, len(raws))
	if concurrency < 1 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, raw := range raws {
		g.Go(func() error {
			reports[i], _ = c.CheckURL(ctx, raw, maxRedirects)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}
