package availability

import (
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// Apply returns a new Index with the writes applied. When the same date
// appears more than once in the batch the last write wins. Writing
// available=true removes the override instead of storing a redundant
// entry, so bulk "open the month" writes keep the index minimal.
// The input Index is never modified.
func Apply(idx Index, writes []Override) Index {
	// Collapse the batch first so ordering decides duplicates explicitly.
	collapsed := make(map[calendar.Date]bool, len(writes))
	order := make([]calendar.Date, 0, len(writes))
	for _, w := range writes {
		if _, seen := collapsed[w.Date]; !seen {
			order = append(order, w.Date)
		}
		collapsed[w.Date] = w.IsAvailable
	}

	next := make(Index, len(idx)+len(order))
	for d, open := range idx {
		next[d] = open
	}
	for _, d := range order {
		if collapsed[d] {
			delete(next, d)
		} else {
			next[d] = false
		}
	}
	return next
}

// ApplyRange expands a single flag over every date in [Start, End).
func ApplyRange(idx Index, r calendar.Range, isAvailable bool) Index {
	writes := make([]Override, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		writes = append(writes, Override{Date: d, IsAvailable: isAvailable})
	}
	return Apply(idx, writes)
}
