package model

import "fmt"

// Hop is one request/response pair observed while following redirects.
type Hop struct {
	URL        string `json:"url" yaml:"url"`
	StatusCode int    `json:"status,omitempty" yaml:"status,omitempty"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TraceResult is the redirect chain produced by a single trace.
// RedirectChain[0] is the origin; the last element is FinalURL.
type TraceResult struct {
	RedirectChain []string `json:"redirectChain" yaml:"redirectChain"`
	FinalURL      string   `json:"finalUrl" yaml:"finalUrl"`
	RedirectCount int      `json:"redirectCount" yaml:"redirectCount"`
	Hops          []Hop    `json:"hops,omitempty" yaml:"hops,omitempty"`
}

// ParamValue is a key and the value it had in one of the compared URLs.
type ParamValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func (p ParamValue) String() string {
	return p.Key + "=" + p.Value
}

// PreservedParam is a key present at both ends of the chain.
// Value is the final value; Previous is only set when Changed.
type PreservedParam struct {
	Key      string `json:"key" yaml:"key"`
	Value    string `json:"value" yaml:"value"`
	Changed  bool   `json:"changed" yaml:"changed"`
	Previous string `json:"previous,omitempty" yaml:"previous,omitempty"`
}

func (p PreservedParam) String() string {
	if p.Changed {
		return fmt.Sprintf("%s=%s (changed from %s)", p.Key, p.Value, p.Previous)
	}
	return p.Key + "=" + p.Value
}

// ParamDiff classifies the origin and final query keys.
type ParamDiff struct {
	Preserved []PreservedParam `json:"preserved" yaml:"preserved"`
	Lost      []ParamValue     `json:"lost" yaml:"lost"`
	Added     []ParamValue     `json:"added" yaml:"added"`
}

// ChangedCount returns how many preserved keys ended up with another value.
func (d ParamDiff) ChangedCount() int {
	n := 0
	for _, p := range d.Preserved {
		if p.Changed {
			n++
		}
	}
	return n
}

// Report is the combined result of composing, tracing and diffing a URL.
type Report struct {
	URL         string `json:"url" yaml:"url"`
	TraceResult `yaml:",inline"`
	ParamDiff   `yaml:",inline"`
}
