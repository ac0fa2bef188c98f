package pipeline

import (
	"strings"

	"admision/internal"
	"admision/internal/lookup"
	"admision/internal/util"
)

type Normalizer struct {
	tables   lookup.Tables
	resolver *lookup.Resolver
}

func NewNormalizer(tables lookup.Tables, resolver *lookup.Resolver) *Normalizer {
	if resolver == nil {
		resolver = lookup.NewResolver(lookup.PolicyPassthrough, nil)
	}
	return &Normalizer{tables: tables, resolver: resolver}
}

type NormalizeStats struct {
	Read    int
	Kept    int
	Dropped int
}

// Normalize cleans raw rows into the canonical layout. Rows without a DNI are
// dropped; the relative order of the remaining rows is preserved.
func (n *Normalizer) Normalize(raw []internal.RawRecord) ([]internal.CleanRecord, NormalizeStats) {
	stats := NormalizeStats{Read: len(raw)}
	out := make([]internal.CleanRecord, 0, len(raw))
	for _, r := range raw {
		r = cleanText(r)

		dni, ok := normalizeDNI(r.DNI)
		if !ok {
			stats.Dropped++
			continue
		}

		rec := internal.CleanRecord{
			DNI:      dni,
			FullName: r.FullName,
			Year:     coerceYear(r.Year),
			Period:   r.Period,
		}
		rec.Score, rec.Condition = reconcileScore(r.Score, r.Condition)

		rec.Scale = classifyScale(rec.Year, rec.Period)
		rec.OriginalScore = rec.Score
		rec.NormalizedScore = normalizeScore(rec.Score, rec.Scale)

		rec.Modality = r.Modality
		if rec.Modality == nil {
			rec.Modality = util.StringPtr(internal.DefaultModality)
		}
		rec.NormalizedModality = n.resolver.Resolve(n.tables.Modality, rec.Modality)

		if rec.Period == nil {
			rec.Period = util.StringPtr(internal.DefaultPeriod)
		}

		n.resolveCareer(&rec, r.Career)
		out = append(out, rec)
	}
	stats.Kept = len(out)
	return out, stats
}

func (n *Normalizer) Misses() []lookup.Miss {
	return n.resolver.Misses()
}

func (n *Normalizer) resolveCareer(rec *internal.CleanRecord, raw *string) {
	if raw != nil {
		rec.Career = util.CleanText(util.StringPtr(util.StripLabel(*raw)))
	}
	rec.NormalizedCareer = n.resolver.Resolve(n.tables.Career, rec.Career)
	rec.Faculty = n.resolver.Resolve(n.tables.Faculty, rec.NormalizedCareer)
	rec.Area = n.resolver.Resolve(n.tables.Area, rec.NormalizedCareer)
}

func cleanText(r internal.RawRecord) internal.RawRecord {
	r.DNI = util.CleanText(r.DNI)
	r.Score = util.CleanText(r.Score)
	r.Condition = util.CleanText(r.Condition)
	r.Year = util.CleanText(r.Year)
	r.Period = util.CleanText(r.Period)
	r.Modality = util.CleanText(r.Modality)
	r.Career = util.CleanText(r.Career)

	if r.FullName != nil {
		name := strings.ToUpper(util.StripQuotes(*r.FullName))
		r.FullName = util.CleanText(&name)
	}
	return r
}

func normalizeDNI(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	dni := strings.TrimSpace(*v)
	if dni == "" || dni == "nan" {
		return "", false
	}
	return dni, true
}

func coerceYear(v *string) *int {
	if v == nil {
		return nil
	}
	year, ok := util.ParseInt(*v)
	if !ok {
		return nil
	}
	return &year
}

// reconcileScore moves a sentinel found in the score column into the
// condition. A sentinel condition always wins over any score value.
func reconcileScore(rawScore, condition *string) (*float64, *string) {
	var score *float64
	if rawScore != nil && internal.IsSentinel(*rawScore) {
		condition = util.StringPtr(*rawScore)
	} else if rawScore != nil {
		if v, ok := util.ParseFloat(*rawScore); ok {
			score = &v
		}
	}

	if condition != nil && internal.IsSentinel(*condition) {
		score = nil
	}
	return score, condition
}

// classifyScale runs before the period default is applied, so a 2023 row with
// no period is treated as current scale.
func classifyScale(year *int, period *string) string {
	if year == nil {
		return internal.ScaleCurrent
	}
	if *year >= 2018 && *year <= 2022 {
		return internal.ScaleLegacy
	}
	if *year == 2023 && period != nil && *period == "I" {
		return internal.ScaleLegacy
	}
	return internal.ScaleCurrent
}

func normalizeScore(score *float64, scale string) *float64 {
	if score == nil {
		return nil
	}
	if scale == internal.ScaleLegacy && *score >= 0 {
		return util.FloatPtr(*score / 100)
	}
	return util.FloatPtr(*score)
}
