package lookup

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(v string) *string { return &v }

func TestDefaultTablesCascade(t *testing.T) {
	tables := Default()

	career, ok := tables.Career.Get("Ingeniería de Sistemas")
	require.True(t, ok)
	assert.Equal(t, "INGENIERÍA DE SISTEMAS", career)

	faculty, ok := tables.Faculty.Get(career)
	require.True(t, ok)
	assert.Equal(t, "FACULTAD DE INGENIERÍA DE SISTEMAS", faculty)

	area, ok := tables.Area.Get(career)
	require.True(t, ok)
	assert.Equal(t, "A", area)
}

func TestEveryCanonicalCareerHasFacultyAndArea(t *testing.T) {
	tables := Default()
	for _, g := range careerGroups() {
		mapped, ok := tables.Career.Get(g.canonical)
		require.True(t, ok, g.canonical)
		assert.Equal(t, g.canonical, mapped)

		_, ok = tables.Faculty.Get(g.canonical)
		assert.True(t, ok, g.canonical)
		area, ok := tables.Area.Get(g.canonical)
		assert.True(t, ok, g.canonical)
		assert.LessOrEqual(t, len(area), 10)
		assert.LessOrEqual(t, len([]rune(g.canonical)), 80)
		assert.LessOrEqual(t, len([]rune(g.faculty)), 60)
	}
}

func TestNewTableCopiesEntries(t *testing.T) {
	src := map[string]string{"a": "A"}
	table := NewTable("x", src)
	src["a"] = "changed"
	src["b"] = "B"

	v, ok := table.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", v)
	assert.Equal(t, 1, table.Len())
}

func TestResolverPolicies(t *testing.T) {
	table := NewTable(FamilyModality, map[string]string{"ORDINARIA": "ORDINARIO"})

	cases := []struct {
		policy Policy
		want   string
	}{
		{policy: PolicyPassthrough, want: "EXONERADOS"},
		{policy: PolicyWarn, want: "EXONERADOS"},
		{policy: PolicyUnknown, want: UnknownValue},
	}

	for _, tc := range cases {
		t.Run(string(tc.policy), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			r := NewResolver(tc.policy, logger)

			assert.Equal(t, "ORDINARIO", *r.Resolve(table, sp("ORDINARIA")))
			assert.Nil(t, r.Resolve(table, nil))
			assert.Equal(t, tc.want, *r.Resolve(table, sp("EXONERADOS")))
			assert.Equal(t, tc.want, *r.Resolve(table, sp("EXONERADOS")))

			assert.Equal(t, []Miss{{Family: FamilyModality, Value: "EXONERADOS", Count: 2}}, r.Misses())
			if tc.policy == PolicyWarn {
				assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("unmapped category value")))
			} else {
				assert.Zero(t, buf.Len())
			}
		})
	}
}

func TestResolverUnknownBucketIsNotAMiss(t *testing.T) {
	tables := Default()
	r := NewResolver(PolicyUnknown, nil)

	career := r.Resolve(tables.Career, sp("Astronomía"))
	assert.Equal(t, UnknownValue, *career)
	assert.Equal(t, UnknownValue, *r.Resolve(tables.Faculty, career))
	assert.Equal(t, UnknownValue, *r.Resolve(tables.Area, career))

	assert.Equal(t, []Miss{{Family: FamilyCareer, Value: "Astronomía", Count: 1}}, r.Misses())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyPassthrough, p)

	p, err = ParsePolicy(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, PolicyWarn, p)

	_, err = ParsePolicy("raise")
	require.Error(t, err)
}
