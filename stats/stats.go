// Package stats computes answer distributions for a question. Every function
// is a pure function of the question kind, its answer rows and (for the
// connected slice) the requester's connection set.
package stats

import (
	"sort"

	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// Bracket is an age bucket used by the discrete age breakdown.
type Bracket int

const (
	BracketKids Bracket = iota
	BracketTeens
	BracketTwenties
	BracketThirties
	BracketOlder
)

// AgeBracket maps any integer age onto exactly one bracket.
func AgeBracket(age int) Bracket {
	switch {
	case age <= 12:
		return BracketKids
	case age <= 19:
		return BracketTeens
	case age <= 29:
		return BracketTwenties
	case age <= 39:
		return BracketThirties
	default:
		return BracketOlder
	}
}

func (b Bracket) String() string {
	switch b {
	case BracketKids:
		return "kids"
	case BracketTeens:
		return "teens"
	case BracketTwenties:
		return "twenties"
	case BracketThirties:
		return "thirties"
	default:
		return "older"
	}
}

// ConnectionSet holds the profile ids connected to a requester.
type ConnectionSet map[uuid.UUID]struct{}

// NewConnectionSet builds a set from ids, skipping the anonymous sentinel.
func NewConnectionSet(ids []uuid.UUID) ConnectionSet {
	set := make(ConnectionSet, len(ids))
	for _, id := range ids {
		if id == types.AnonymousUserID {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is part of the set.
func (s ConnectionSet) Contains(id uuid.UUID) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[id]
	return ok
}

// Compute returns the full statistics payload for the question kind.
func Compute(kind types.QuestionKind, rows []types.AnswerRow, connected ConnectionSet) types.StatsPayload {
	switch kind {
	case types.KindRange:
		out := Range(rows)
		return types.StatsPayload{Kind: kind, Range: &out}
	case types.KindDiscrete:
		out := Discrete(rows, connected)
		return types.StatsPayload{Kind: kind, Discrete: &out}
	default:
		return types.StatsPayload{Kind: types.KindUnknown}
	}
}

// Quick returns the quick field shown on every question read.
func Quick(kind types.QuestionKind, rows []types.AnswerRow) types.QuickStats {
	switch kind {
	case types.KindRange:
		return types.QuickStats{Kind: kind, Average: average(values(rows, nil))}
	case types.KindDiscrete:
		return types.QuickStats{Kind: kind, Counts: countOptions(rows, nil)}
	default:
		return types.QuickStats{Kind: types.KindUnknown}
	}
}

// Discrete computes option counts sliced by connection, gender, registration,
// region and age bracket.
func Discrete(rows []types.AnswerRow, connected ConnectionSet) types.DiscreteStats {
	out := types.DiscreteStats{
		Quick: countOptions(rows, nil),
		Connected: countOptions(rows, func(r types.AnswerRow) bool {
			return connected.Contains(r.Respondent.ID)
		}),
		Male:   countOptions(rows, genderIs(types.GenderMale)),
		Female: countOptions(rows, genderIs(types.GenderFemale)),
		Registered: countOptions(rows, func(r types.AnswerRow) bool {
			return r.Respondent.Registered()
		}),
		Region: regionBreakdown(rows),
	}
	for _, row := range rows {
		if !row.Respondent.Known {
			continue
		}
		var bucket *types.OptionCounts
		switch AgeBracket(row.Respondent.Age) {
		case BracketKids:
			bucket = &out.Age.Kids
		case BracketTeens:
			bucket = &out.Age.Teens
		case BracketTwenties:
			bucket = &out.Age.Twenties
		case BracketThirties:
			bucket = &out.Age.Thirties
		case BracketOlder:
			bucket = &out.Age.Older
		}
		bucket.Add(row.Answer.Value)
	}
	return out
}

// Range computes averages and raw responses for range questions.
func Range(rows []types.AnswerRow) types.RangeStats {
	return types.RangeStats{
		Quick:  rangeSlice(values(rows, nil)),
		Male:   rangeSlice(values(rows, genderIs(types.GenderMale))),
		Female: rangeSlice(values(rows, genderIs(types.GenderFemale))),
		Region: regionAverages(rows),
	}
}

type rowFilter func(types.AnswerRow) bool

func genderIs(gender types.Gender) rowFilter {
	return func(r types.AnswerRow) bool {
		return r.Respondent.Known && r.Respondent.Gender == gender
	}
}

func countOptions(rows []types.AnswerRow, keep rowFilter) types.OptionCounts {
	var counts types.OptionCounts
	for _, row := range rows {
		if keep != nil && !keep(row) {
			continue
		}
		counts.Add(row.Answer.Value)
	}
	return counts
}

func values(rows []types.AnswerRow, keep rowFilter) []int {
	out := make([]int, 0, len(rows))
	for _, row := range rows {
		if keep != nil && !keep(row) {
			continue
		}
		out = append(out, row.Answer.Value)
	}
	return out
}

func rangeSlice(responses []int) types.RangeSlice {
	return types.RangeSlice{
		Average:   average(responses),
		Responses: responses,
	}
}

// average returns nil for an empty set so "no data" never reads as zero.
func average(responses []int) *float64 {
	if len(responses) == 0 {
		return nil
	}
	sum := 0
	for _, v := range responses {
		sum += v
	}
	avg := float64(sum) / float64(len(responses))
	return &avg
}

func regionBreakdown(rows []types.AnswerRow) types.RegionBreakdown {
	total := map[string]int{}
	perOption := make([]map[string]int, types.OptionSlots)
	for i := range perOption {
		perOption[i] = map[string]int{}
	}
	for _, row := range rows {
		if !row.Respondent.Known {
			continue
		}
		region := row.Respondent.Region
		total[region]++
		if idx := row.Answer.Value; idx >= 0 && idx < types.OptionSlots {
			perOption[idx][region]++
		}
	}
	return types.RegionBreakdown{
		RegionTotal: regionCounts(total),
		Option1:     regionCounts(perOption[0]),
		Option2:     regionCounts(perOption[1]),
		Option3:     regionCounts(perOption[2]),
		Option4:     regionCounts(perOption[3]),
		Option5:     regionCounts(perOption[4]),
	}
}

func regionCounts(counts map[string]int) []types.RegionCount {
	out := make([]types.RegionCount, 0, len(counts))
	for _, region := range sortedKeys(counts) {
		out = append(out, types.RegionCount{Region: region, Count: counts[region]})
	}
	return out
}

func regionAverages(rows []types.AnswerRow) []types.RegionAverage {
	grouped := map[string][]int{}
	for _, row := range rows {
		if !row.Respondent.Known {
			continue
		}
		grouped[row.Respondent.Region] = append(grouped[row.Respondent.Region], row.Answer.Value)
	}
	out := make([]types.RegionAverage, 0, len(grouped))
	for _, region := range sortedKeys(grouped) {
		out = append(out, types.RegionAverage{Region: region, Average: average(grouped[region])})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
