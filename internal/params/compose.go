package params

import (
	"net/url"
	"strings"

	"purls/internal/model"
)

// Compose serializes base and params back into a URL.
//
// Query entries keep their order; entries with a blank key are skipped.
// The first fragment entry is always emitted last, verbatim, and only when
// its value is not blank. An empty base composes to "".
func Compose(base string, params []model.Param) string {
	if base == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(base)

	sep := "?"
	for _, p := range params {
		if p.IsFragment() || strings.TrimSpace(p.Key) == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(EncodeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(EncodeComponent(p.Value))
		sep = "&"
	}

	for _, p := range params {
		if !p.IsFragment() {
			continue
		}
		if strings.TrimSpace(p.Value) != "" {
			b.WriteByte('#')
			b.WriteString(p.Value)
		}
		break
	}

	return b.String()
}

// ComposeURL is Compose applied to a DecomposedURL.
func ComposeURL(d model.DecomposedURL) string {
	return Compose(d.Base, d.Params)
}

// EncodeComponent percent-encodes s for use as a query key or value.
// Spaces become %20 rather than '+', so the result decodes the same way
// with either query or path unescaping.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
