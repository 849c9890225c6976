package params

import (
	"sort"

	"purls/internal/model"
)

// UTMKeys are the marketing attribution keys added by AddUTM.
var UTMKeys = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

// The functions below never modify their input slice.

// Sorted returns params in display order: query entries first, in their
// original order, then fragment entries.
func Sorted(params []model.Param) []model.Param {
	out := clone(params)
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].IsFragment() && out[j].IsFragment()
	})
	return out
}

// Update replaces key and value of the entry at index i.
// The key of a fragment entry is left empty.
func Update(params []model.Param, i int, key, value string) []model.Param {
	out := clone(params)
	if i < 0 || i >= len(out) {
		return out
	}
	if !out[i].IsFragment() {
		out[i].Key = key
	}
	out[i].Value = value
	return out
}

// Remove drops the entry at index i.
func Remove(params []model.Param, i int) []model.Param {
	if i < 0 || i >= len(params) {
		return clone(params)
	}
	out := make([]model.Param, 0, len(params)-1)
	out = append(out, params[:i]...)
	return append(out, params[i+1:]...)
}

// Add inserts p. Query entries go before the first fragment entry; a fragment
// is only added when none exists yet.
func Add(params []model.Param, p model.Param) []model.Param {
	if p.IsFragment() {
		if HasFragment(params) {
			return clone(params)
		}
		return append(clone(params), p)
	}
	return insertBeforeFragment(params, p)
}

// AddUTM adds every UTM key not already present, with empty values.
func AddUTM(params []model.Param) []model.Param {
	existing := make(map[string]bool, len(params))
	for _, p := range params {
		if !p.IsFragment() {
			existing[p.Key] = true
		}
	}
	var missing []model.Param
	for _, k := range UTMKeys {
		if !existing[k] {
			missing = append(missing, model.QueryParam(k, ""))
		}
	}
	return insertBeforeFragment(params, missing...)
}

// AddFragment appends an empty fragment entry unless one exists.
func AddFragment(params []model.Param) []model.Param {
	return Add(params, model.FragmentParam(""))
}

func HasFragment(params []model.Param) bool {
	return fragmentIndex(params) != -1
}

// Separator returns the character shown before the entry at display index i:
// "?" for the first query entry, "&" for later ones and "#" for the fragment.
func Separator(params []model.Param, i int) string {
	if i < 0 || i >= len(params) {
		return ""
	}
	if params[i].IsFragment() {
		return "#"
	}
	for j := 0; j < i; j++ {
		if !params[j].IsFragment() {
			return "&"
		}
	}
	return "?"
}

func insertBeforeFragment(params []model.Param, add ...model.Param) []model.Param {
	idx := fragmentIndex(params)
	if idx == -1 {
		return append(clone(params), add...)
	}
	out := make([]model.Param, 0, len(params)+len(add))
	out = append(out, params[:idx]...)
	out = append(out, add...)
	return append(out, params[idx:]...)
}

func fragmentIndex(params []model.Param) int {
	for i, p := range params {
		if p.IsFragment() {
			return i
		}
	}
	return -1
}

func clone(params []model.Param) []model.Param {
	if params == nil {
		return nil
	}
	out := make([]model.Param, len(params))
	copy(out, params)
	return out
}
