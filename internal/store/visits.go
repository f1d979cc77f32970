package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gastroflow/gastroflow/internal/model"
)

// PageSize is the fixed page length for every paginated listing.
const PageSize = 5

// VisitLedger is the append-only record of loyalty-qualifying visits for
// the current session, most recent first.  Every insertion synchronously
// hands the new count to the benefit issuer so threshold rewards mint in
// the same call.
type VisitLedger struct {
	mu     sync.Mutex
	visits []model.Visit
	issuer *BenefitIssuer
	now    func() time.Time
}

// NewVisitLedger wires a ledger to the issuer that watches it.
func NewVisitLedger(issuer *BenefitIssuer) *VisitLedger {
	return &VisitLedger{issuer: issuer, now: time.Now}
}

// RegisterVisit records one visit with the given reason and returns it.
// The new visit is prepended so index 0 is always the latest.
func (l *VisitLedger) RegisterVisit(reason model.VisitReason) (model.Visit, error) {
	if !reason.Valid() {
		return model.Visit{}, invalidField("reason", "selecciona un motivo para tu visita")
	}
	l.mu.Lock()
	v := model.Visit{
		ID:     uuid.NewString(),
		Date:   l.now(),
		Reason: reason,
	}
	l.visits = append([]model.Visit{v}, l.visits...)
	count := len(l.visits)
	l.mu.Unlock()

	if l.issuer != nil {
		l.issuer.OnVisitRegistered(count)
	}
	return v, nil
}

// Visits returns one page of the ledger (1-based page number) and the total
// visit count.  An out-of-range page yields an empty slice.
func (l *VisitLedger) Visits(page int) ([]model.Visit, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return paginate(l.visits, page), len(l.visits)
}

// Count returns how many visits are on the ledger.
func (l *VisitLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visits)
}

// Clear empties the ledger.  Called when the session ends.
func (l *VisitLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visits = nil
}

// paginate slices one fixed-size page out of items, 1-based.
func paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
