package model

// BenefitStatus is the redemption state of a reward.  A benefit moves from
// active to used exactly once and never back.
type BenefitStatus string

const (
	BenefitActive BenefitStatus = "active"
	BenefitUsed   BenefitStatus = "used"
)

// Benefit is a redeemable reward minted by the loyalty program.  QRCode
// holds the redemption image reference shown to staff.  Used benefits are
// kept for history with a redemption-dated description.
type Benefit struct {
	ID          string
	Name        string
	Description string
	QRCode      string
	Status      BenefitStatus
}
