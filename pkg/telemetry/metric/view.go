package metric

import (
	"errors"
	"strings"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
)

var ErrWildcardRename = errors.New("a view renaming its stream must not use a wildcard instrument matcher")

// View maps matching instruments to a customized output stream: renamed,
// re-aggregated, attribute-filtered, or dropped entirely.
//
// Matching: InstrumentName is exact or uses '*' wildcards ('*' matches any
// run of characters, including none); an empty name matches every
// instrument. InstrumentKind and ScopeName narrow the match when set.
// The first matching view wins per instrument; instruments matching no
// view keep their default stream.
type View struct {
	// Matcher.
	InstrumentName string
	InstrumentKind InstrumentKind
	ScopeName      string

	// Stream definition. Zero values keep the instrument's own.
	Name            string
	Description     string
	Aggregation     Aggregation
	AttributeFilter []attribute.Key
	Drop            bool
}

// Validate rejects ambiguous views at registration time.
func (v View) Validate() error {
	if v.Name != "" && strings.Contains(v.InstrumentName, "*") {
		return ErrWildcardRename
	}
	return nil
}

// Matches reports whether the view applies to the instrument.
func (v View) Matches(inst Instrument) bool {
	if v.InstrumentKind != instrumentKindUnset && v.InstrumentKind != inst.Kind {
		return false
	}
	if v.ScopeName != "" && v.ScopeName != inst.Scope.Name {
		return false
	}
	if v.InstrumentName == "" {
		return true
	}
	return wildcardMatch(v.InstrumentName, inst.Name)
}

// wildcardMatch implements '*' glob matching by greedy backtracking.
func wildcardMatch(pattern, name string) bool {
	var pi, ni int
	star := -1
	match := 0
	for ni < len(name) {
		switch {
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			match = ni
			pi++
		case pi < len(pattern) && pattern[pi] == name[ni]:
			pi++
			ni++
		case star != -1:
			pi = star + 1
			match++
			ni = match
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// resolveStream applies the first matching view to the instrument,
// producing the stream definition to aggregate under. The second return
// is false when the stream is dropped.
func resolveStream(views []View, inst Instrument) (streamDefinition, bool) {
	def := streamDefinition{
		name:        inst.Name,
		description: inst.Description,
		unit:        inst.Unit,
		aggregation: defaultAggregation(inst.Kind),
	}
	for _, v := range views {
		if !v.Matches(inst) {
			continue
		}
		if v.Drop {
			return streamDefinition{}, false
		}
		if _, isDrop := v.Aggregation.(AggregationDrop); isDrop {
			return streamDefinition{}, false
		}
		if v.Name != "" {
			def.name = v.Name
		}
		if v.Description != "" {
			def.description = v.Description
		}
		if v.Aggregation != nil {
			def.aggregation = v.Aggregation
		}
		if len(v.AttributeFilter) > 0 {
			def.filter = make(map[attribute.Key]struct{}, len(v.AttributeFilter))
			for _, k := range v.AttributeFilter {
				def.filter[k] = struct{}{}
			}
		}
		break
	}
	return def, true
}

type streamDefinition struct {
	name        string
	description string
	unit        string
	aggregation Aggregation
	filter      map[attribute.Key]struct{}
}
