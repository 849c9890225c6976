package trace

import (
	"net/url"
	"strings"
)

// queryMap is a URL's query string as key -> value, with keys kept in the
// order they first appear. A repeated key keeps its last value.
type queryMap struct {
	keys   []string
	values map[string]string
}

func (q queryMap) get(key string) (string, bool) {
	v, ok := q.values[key]
	return v, ok
}

// parseQueryMap reads the query string of rawURL. URLs that do not parse
// have no parameters.
func parseQueryMap(rawURL string) queryMap {
	q := queryMap{values: make(map[string]string)}
	u, err := url.Parse(rawURL)
	if err != nil {
		return q
	}
	for _, piece := range strings.Split(u.RawQuery, "&") {
		if piece == "" {
			continue
		}
		key, value, _ := strings.Cut(piece, "=")
		key = unescape(key)
		if _, seen := q.values[key]; !seen {
			q.keys = append(q.keys, key)
		}
		q.values[key] = unescape(value)
	}
	return q
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}
