package model

import "fmt"

// ParamKind tags an editor entry as a query parameter or as the URL fragment.
type ParamKind int

const (
	KindQuery    ParamKind = iota // key=value pair in the query string
	KindFragment                  // the #fragment, Key is unused
)

func (k ParamKind) String() string {
	if k == KindFragment {
		return "fragment"
	}
	return "query"
}

func (k ParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts "query" (or empty) and "fragment".
func (k *ParamKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "query":
		*k = KindQuery
	case "fragment":
		*k = KindFragment
	default:
		return fmt.Errorf("unknown parameter kind %q", text)
	}
	return nil
}

// Param is a single entry of the editable URL model.
type Param struct {
	Kind  ParamKind `json:"kind" yaml:"kind"`
	Key   string    `json:"key,omitempty" yaml:"key,omitempty"`
	Value string    `json:"value" yaml:"value"`
}

// QueryParam builds a regular key=value entry.
func QueryParam(key, value string) Param {
	return Param{Kind: KindQuery, Key: key, Value: value}
}

// FragmentParam builds the fragment entry. value carries no leading '#'.
func FragmentParam(value string) Param {
	return Param{Kind: KindFragment, Value: value}
}

func (p Param) IsFragment() bool {
	return p.Kind == KindFragment
}

// DecomposedURL is a URL split into base, ordered parameters and fragment.
// The fragment, if any, is carried inside Params as a KindFragment entry.
type DecomposedURL struct {
	Base   string  `json:"base" yaml:"base"`
	Params []Param `json:"params" yaml:"params"`
}

// Fragment returns the value of the first fragment entry.
func (d DecomposedURL) Fragment() (string, bool) {
	for _, p := range d.Params {
		if p.IsFragment() {
			return p.Value, true
		}
	}
	return "", false
}

// QueryParams returns the non-fragment entries in order.
func (d DecomposedURL) QueryParams() []Param {
	var out []Param
	for _, p := range d.Params {
		if !p.IsFragment() {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty reports whether nothing was decomposed.
func (d DecomposedURL) IsEmpty() bool {
	return d.Base == "" && len(d.Params) == 0
}
