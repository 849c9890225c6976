package trace

import (
	"purls/internal/model"
)

// Diff compares the query parameters of the origin and the final URL of a chain.
//
// Every origin key lands in Preserved (present at the end, possibly with a
// different value) or Lost. Keys only present at the end are Added. Lists
// follow the order in which keys first appear in their URL.
func Diff(originURL, finalURL string) model.ParamDiff {
	origin := parseQueryMap(originURL)
	final := parseQueryMap(finalURL)

	diff := model.ParamDiff{
		Preserved: []model.PreservedParam{},
		Lost:      []model.ParamValue{},
		Added:     []model.ParamValue{},
	}

	for _, key := range origin.keys {
		originValue := origin.values[key]
		finalValue, ok := final.get(key)
		if !ok {
			diff.Lost = append(diff.Lost, model.ParamValue{Key: key, Value: originValue})
			continue
		}
		p := model.PreservedParam{Key: key, Value: finalValue}
		if finalValue != originValue {
			p.Changed = true
			p.Previous = originValue
		}
		diff.Preserved = append(diff.Preserved, p)
	}

	for _, key := range final.keys {
		if _, ok := origin.get(key); !ok {
			diff.Added = append(diff.Added, model.ParamValue{Key: key, Value: final.values[key]})
		}
	}

	return diff
}
