package fundamentals

import (
	"strings"

	"github.com/bobmcallan/sift/internal/models"
)

// normalizeKey reduces a label to lowercase alphanumerics so that
// "Total Revenue", "total_revenue" and "TotalRevenue" all collide.
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// statementResolver indexes a quarterly statement's rows by normalized label
type statementResolver struct {
	statement *models.QuarterlyStatement
	index     map[string]int
}

func newStatementResolver(statement *models.QuarterlyStatement) *statementResolver {
	r := &statementResolver{statement: statement}
	if statement.Empty() {
		return r
	}
	r.index = make(map[string]int, len(statement.Rows))
	for i, row := range statement.Rows {
		key := normalizeKey(row.Label)
		if _, exists := r.index[key]; !exists {
			r.index[key] = i
		}
	}
	return r
}

// row returns the values for the first matching candidate label, or nil
func (r *statementResolver) row(candidates ...string) []*float64 {
	if r.index == nil {
		return nil
	}
	for _, candidate := range candidates {
		if i, ok := r.index[normalizeKey(candidate)]; ok {
			return r.statement.Rows[i].Values
		}
	}
	return nil
}

// ttmSum sums the values of at most the four most-recent quarters for the
// first matching label. Quarters the provider left blank are skipped; a row
// with no usable values at all resolves to nil, same as an unmatched label.
func (r *statementResolver) ttmSum(candidates ...string) *float64 {
	values := r.row(candidates...)
	if values == nil {
		return nil
	}

	n := len(values)
	if n > 4 {
		n = 4
	}

	var sum float64
	found := false
	for _, v := range values[:n] {
		if v != nil {
			sum += *v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &sum
}

// mrqValue returns the single most-recent quarter's value for the first
// matching label, nil when the label is unmatched or the quarter is blank.
func (r *statementResolver) mrqValue(candidates ...string) *float64 {
	values := r.row(candidates...)
	if len(values) == 0 || values[0] == nil {
		return nil
	}
	v := *values[0]
	return &v
}

// profileField returns the first matching profile field, or nil
func profileField(profile *models.CompanyProfile, candidates ...string) *float64 {
	if profile == nil || profile.Fields == nil {
		return nil
	}

	index := make(map[string]float64, len(profile.Fields))
	for key, val := range profile.Fields {
		nk := normalizeKey(key)
		if _, exists := index[nk]; !exists {
			index[nk] = val
		}
	}

	for _, candidate := range candidates {
		if v, ok := index[normalizeKey(candidate)]; ok {
			val := v
			return &val
		}
	}
	return nil
}

// profileFieldPositive is profileField restricted to positive values; the
// market-cap and share-count fallback chains only advance past a candidate
// when it yields no positive figure.
func profileFieldPositive(profile *models.CompanyProfile, candidates ...string) *float64 {
	v := profileField(profile, candidates...)
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
