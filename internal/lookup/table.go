// Package lookup holds the category vocabularies used to reconcile the
// yearly extracts. Tables are built once and only read afterwards.
package lookup

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

const UnknownValue = "DESCONOCIDO"

const (
	FamilyModality = "modalidad"
	FamilyCareer   = "carrera"
	FamilyFaculty  = "facultad"
	FamilyArea     = "area"
)

type Table struct {
	family  string
	entries map[string]string
}

func NewTable(family string, entries map[string]string) Table {
	cp := make(map[string]string, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return Table{family: family, entries: cp}
}

func (t Table) Get(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

func (t Table) Len() int {
	return len(t.entries)
}

type Tables struct {
	Modality Table
	Career   Table
	Faculty  Table
	Area     Table
}

func Default() Tables {
	career, faculty, area := groupEntries(careerGroups())
	return Tables{
		Modality: NewTable(FamilyModality, modalityEntries()),
		Career:   NewTable(FamilyCareer, career),
		Faculty:  NewTable(FamilyFaculty, faculty),
		Area:     NewTable(FamilyArea, area),
	}
}

type Policy string

const (
	PolicyPassthrough Policy = "passthrough"
	PolicyWarn        Policy = "warn"
	PolicyUnknown     Policy = "unknown"
)

func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyPassthrough:
		return PolicyPassthrough, nil
	case PolicyWarn:
		return PolicyWarn, nil
	case PolicyUnknown:
		return PolicyUnknown, nil
	default:
		return "", fmt.Errorf("unsupported unmapped policy: %s", value)
	}
}

type Miss struct {
	Family string
	Value  string
	Count  int
}

// Resolver maps values through the tables and applies the unmapped policy to
// keys a table does not know.
type Resolver struct {
	policy Policy
	logger *slog.Logger
	misses map[string]map[string]int
}

func NewResolver(policy Policy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{policy: policy, logger: logger, misses: map[string]map[string]int{}}
}

func (r *Resolver) Resolve(t Table, value *string) *string {
	if value == nil {
		return nil
	}
	if mapped, ok := t.Get(*value); ok {
		return &mapped
	}
	// An upstream miss already bucketed this value.
	if r.policy == PolicyUnknown && *value == UnknownValue {
		unknown := UnknownValue
		return &unknown
	}

	seen := r.misses[t.family]
	if seen == nil {
		seen = map[string]int{}
		r.misses[t.family] = seen
	}
	seen[*value]++
	if seen[*value] == 1 && r.policy == PolicyWarn {
		r.logger.Warn("unmapped category value", "family", t.family, "value", *value)
	}

	if r.policy == PolicyUnknown {
		unknown := UnknownValue
		return &unknown
	}
	out := *value
	return &out
}

// Misses lists every distinct unmapped value, ordered by family then value.
func (r *Resolver) Misses() []Miss {
	out := []Miss{}
	for family, values := range r.misses {
		for value, count := range values {
			out = append(out, Miss{Family: family, Value: value, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Value < out[j].Value
	})
	return out
}
