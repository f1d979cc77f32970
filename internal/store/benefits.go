package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/model"
)

// BenefitThreshold is the visit count step that unlocks a reward: one
// benefit per positive multiple of five.
const BenefitThreshold = 5

const (
	benefitName        = "40% de Descuento"
	benefitDescription = "¡Felicidades! Has acumulado 5 visitas. Disfruta de un 40% de descuento en tu próxima cuenta (tope $50.000)."
	benefitQRCode      = "https://placehold.co/300x300.png"
)

// BenefitIssuer watches the visit ledger and mints rewards when the count
// crosses a threshold.  Issuance is decoupled from redemption so the
// threshold policy can change without touching the ledger or bookings.
type BenefitIssuer struct {
	mu     sync.Mutex
	active []model.Benefit
	used   []model.Benefit
	now    func() time.Time
	log    *zap.Logger

	// minted, when set, is notified for each newly issued benefit.  The
	// queue publisher hangs off this; failures there never block issuance.
	minted func(model.Benefit)
}

// NewBenefitIssuer builds an issuer with empty active and used sets.
func NewBenefitIssuer(log *zap.Logger) *BenefitIssuer {
	return &BenefitIssuer{now: time.Now, log: log}
}

// OnMinted registers the hook called with each newly issued benefit.
func (b *BenefitIssuer) OnMinted(fn func(model.Benefit)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.minted = fn
}

// OnVisitRegistered mints exactly one benefit when newVisitCount is a
// positive multiple of the threshold.  It is a pure function of the count,
// so registering visit #5 mints once and visit #6 mints nothing.
func (b *BenefitIssuer) OnVisitRegistered(newVisitCount int) {
	if newVisitCount <= 0 || newVisitCount%BenefitThreshold != 0 {
		return
	}
	b.mu.Lock()
	benefit := model.Benefit{
		ID:          uuid.NewString(),
		Name:        benefitName,
		Description: benefitDescription,
		QRCode:      benefitQRCode,
		Status:      model.BenefitActive,
	}
	b.active = append(b.active, benefit)
	hook := b.minted
	b.mu.Unlock()

	b.log.Info("benefit minted",
		zap.String("benefit_id", benefit.ID),
		zap.Int("visit_count", newVisitCount))
	if hook != nil {
		hook(benefit)
	}
}

// Redeem moves one benefit from the active set to the used set, stamping
// the description with the redemption date.  Unknown or already-used ids
// fail with ErrNotFound.  Irreversible.
func (b *BenefitIssuer) Redeem(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, benefit := range b.active {
		if benefit.ID != id {
			continue
		}
		b.active = append(b.active[:i], b.active[i+1:]...)
		benefit.Status = model.BenefitUsed
		benefit.Description = "Utilizado el " + b.now().Format("02-01-2006")
		b.used = append([]model.Benefit{benefit}, b.used...)
		b.log.Info("benefit redeemed", zap.String("benefit_id", id))
		return nil
	}
	return ErrNotFound
}

// Active returns one page of redeemable benefits and the total count.
func (b *BenefitIssuer) Active(page int) ([]model.Benefit, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return paginate(b.active, page), len(b.active)
}

// Used returns one page of redeemed benefits, most recently used first,
// and the total count.
func (b *BenefitIssuer) Used(page int) ([]model.Benefit, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return paginate(b.used, page), len(b.used)
}

// Clear drops both sets.  Called when the session ends.
func (b *BenefitIssuer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active, b.used = nil, nil
}
