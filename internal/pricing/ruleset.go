package pricing

import (
	"sort"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// RatePatch carries partial updates for a peak rate.
type RatePatch struct {
	Range       *calendar.Range
	Type        *RateType
	Value       *int64
	Description *string
}

// ValidateRate checks the structural invariants of a single rate.
func ValidateRate(rate PeakRate) error {
	if rate.Value <= 0 {
		return ErrInvalidValue
	}
	if rate.Type != RateFixed && rate.Type != RatePercentage {
		return ErrInvalidType
	}
	return nil
}

// CreateRate returns a new RuleSet with the candidate added. The write is
// rejected with an OverlapError if the candidate's range shares any night
// with an existing rate. The input RuleSet is never modified.
func CreateRate(rs RuleSet, candidate PeakRate) (RuleSet, error) {
	if err := ValidateRate(candidate); err != nil {
		return RuleSet{}, err
	}
	if conflict := findOverlap(rs.Rates, candidate.Range, ""); conflict != nil {
		return RuleSet{}, &OverlapError{Conflict: *conflict}
	}

	next := cloneRuleSet(rs)
	next.Rates = append(next.Rates, candidate)
	sortRates(next.Rates)
	return next, nil
}

// UpdateRate applies a patch to an existing rate and re-validates overlap
// against every other rate, excluding the one being updated.
func UpdateRate(rs RuleSet, rateID string, patch RatePatch) (RuleSet, error) {
	idx := -1
	for i := range rs.Rates {
		if rs.Rates[i].ID == rateID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return RuleSet{}, ErrRateNotFound
	}

	updated := rs.Rates[idx]
	if patch.Range != nil {
		updated.Range = *patch.Range
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.Value != nil {
		updated.Value = *patch.Value
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}

	if err := ValidateRate(updated); err != nil {
		return RuleSet{}, err
	}
	if conflict := findOverlap(rs.Rates, updated.Range, rateID); conflict != nil {
		return RuleSet{}, &OverlapError{Conflict: *conflict}
	}

	next := cloneRuleSet(rs)
	next.Rates[idx] = updated
	sortRates(next.Rates)
	return next, nil
}

// DeleteRate returns a new RuleSet without the given rate. Rates have no
// dependents, so removal is unconditional.
func DeleteRate(rs RuleSet, rateID string) (RuleSet, error) {
	idx := -1
	for i := range rs.Rates {
		if rs.Rates[i].ID == rateID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return RuleSet{}, ErrRateNotFound
	}

	next := cloneRuleSet(rs)
	next.Rates = append(next.Rates[:idx], next.Rates[idx+1:]...)
	return next, nil
}

// findOverlap returns the first rate overlapping r, skipping excludeID.
func findOverlap(rates []PeakRate, r calendar.Range, excludeID string) *PeakRate {
	for i := range rates {
		if rates[i].ID == excludeID {
			continue
		}
		if rates[i].Range.Overlaps(r) {
			conflict := rates[i]
			return &conflict
		}
	}
	return nil
}

func cloneRuleSet(rs RuleSet) RuleSet {
	next := rs
	next.Rates = make([]PeakRate, len(rs.Rates))
	copy(next.Rates, rs.Rates)
	return next
}

func sortRates(rates []PeakRate) {
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Range.Start.Before(rates[j].Range.Start)
	})
}
