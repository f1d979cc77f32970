package store

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Session aggregates the one live user session: the identity store plus
// every identity-scoped collection.  There is exactly one Session per
// process (single-session model); it replaces the ambient global state the
// UI used to share, so each component stays testable on its own.
type Session struct {
	Identity     *IdentityStore
	Visits       *VisitLedger
	Benefits     *BenefitIssuer
	Reservations *ReservationBook
	Relay        *Relay
}

// NewSession wires the components together: the ledger feeds the issuer on
// every visit, and logout clears the ledger and both benefit sets.  The
// reservation book is not cleared — reservations are never deleted and the
// per-owner listing goes empty on its own once no identity is current.
func NewSession(authLatency time.Duration, bcryptCost int, rdb *redis.Client, log *zap.Logger) *Session {
	identity := NewIdentityStore(authLatency, bcryptCost, log)
	issuer := NewBenefitIssuer(log)
	ledger := NewVisitLedger(issuer)

	s := &Session{
		Identity:     identity,
		Visits:       ledger,
		Benefits:     issuer,
		Reservations: NewReservationBook(log),
		Relay:        NewRelay(rdb, log),
	}
	identity.OnLogout(func() {
		ledger.Clear()
		issuer.Clear()
	})
	return s
}
