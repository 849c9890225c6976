// Package params splits URLs into an editable base/parameters/fragment model
// and serializes that model back into a URL.
package params

import (
	"net/url"
	"regexp"
	"strings"

	"purls/internal/model"
)

// Matches "text#fragment?query", which browsers and mail clients produce
// when tracking parameters get appended to a URL that already had a fragment.
var fragmentBeforeQuery = regexp.MustCompile(`^([^#]*)(#[^?]*)\?(.*)$`)

// RepairFragmentOrder rewrites "base#frag?query" into "base?query#frag".
// Any other input is returned unchanged.
func RepairFragmentOrder(raw string) (string, bool) {
	m := fragmentBeforeQuery.FindStringSubmatch(raw)
	if m == nil {
		return raw, false
	}
	return m[1] + "?" + m[3] + m[2], true
}

// Decompose splits raw into base, ordered query parameters and fragment.
// It never fails: input that does not parse as an absolute URL is split textually.
func Decompose(raw string) model.DecomposedURL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DecomposedURL{}
	}

	repaired, _ := RepairFragmentOrder(raw)
	u, err := url.Parse(repaired)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return decomposeManually(raw)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	d := model.DecomposedURL{
		Base:   u.Scheme + "://" + u.Host + path,
		Params: parseQuery(u.RawQuery, url.QueryUnescape, true),
	}
	if frag := u.EscapedFragment(); frag != "" {
		d.Params = append(d.Params, model.FragmentParam(frag))
	}
	return d
}

// decomposeManually is the textual fallback for input the URL parser rejects.
func decomposeManually(raw string) model.DecomposedURL {
	working := raw
	fragment := ""

	if before, after, found := strings.Cut(raw, "#"); found {
		working = before
		fragment = unescapeOrRaw(after, url.PathUnescape)
	}

	// The parser failing says nothing about fragment order, so repair again
	// against the original text.
	if m := fragmentBeforeQuery.FindStringSubmatch(raw); m != nil {
		working = m[1] + "?" + m[3]
		fragment = unescapeOrRaw(strings.TrimPrefix(m[2], "#"), url.PathUnescape)
	}

	var d model.DecomposedURL
	base, query, hasQuery := strings.Cut(working, "?")
	d.Base = base
	if hasQuery {
		d.Params = parseQuery(query, url.PathUnescape, false)
	}
	if fragment != "" {
		d.Params = append(d.Params, model.FragmentParam(fragment))
	}
	return d
}

// parseQuery splits a raw query string on '&' keeping the original order and
// duplicate keys. Pieces without '=' become empty-valued entries only when
// keepBare is set. Empty keys are always dropped.
func parseQuery(rawQuery string, unescape func(string) (string, error), keepBare bool) []model.Param {
	if rawQuery == "" {
		return nil
	}
	var out []model.Param
	for _, piece := range strings.Split(rawQuery, "&") {
		if piece == "" {
			continue
		}
		key, value, found := strings.Cut(piece, "=")
		if !found && !keepBare {
			continue
		}
		key = unescapeOrRaw(key, unescape)
		if key == "" {
			continue
		}
		out = append(out, model.QueryParam(key, unescapeOrRaw(value, unescape)))
	}
	return out
}

func unescapeOrRaw(s string, unescape func(string) (string, error)) string {
	if v, err := unescape(s); err == nil {
		return v
	}
	return s
}
