package model

import "time"

// VisitReason classifies why a guest came in.  The set is fixed; anything
// else is rejected at registration time.
type VisitReason string

const (
	ReasonGeneral     VisitReason = "General"
	ReasonCelebracion VisitReason = "Celebración"
	ReasonCumpleanos  VisitReason = "Cumpleaños"
	ReasonCita        VisitReason = "Cita"
	ReasonNegocios    VisitReason = "Negocios"
)

// VisitReasons lists every accepted reason, in menu order.
var VisitReasons = []VisitReason{
	ReasonGeneral, ReasonCelebracion, ReasonCumpleanos, ReasonCita, ReasonNegocios,
}

// Valid reports whether r is one of the fixed reasons.
func (r VisitReason) Valid() bool {
	for _, v := range VisitReasons {
		if r == v {
			return true
		}
	}
	return false
}

// Visit is one recorded loyalty-qualifying attendance.  Visits are never
// mutated or individually deleted; the whole ledger clears on logout.
type Visit struct {
	ID     string
	Date   time.Time
	Reason VisitReason
}
