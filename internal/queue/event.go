// Package queue defines the domain events exchanged over the message
// broker and the background consumer that records them.
package queue

// EventsQueueName is the single durable queue all restaurant events share.
const EventsQueueName = "gastroflow.events"

// Event types.
const (
	TypeReservationConfirmed = "reservation.confirmed"
	TypeBenefitMinted        = "loyalty.benefit.minted"
)

// ReservationConfirmedEvent is published when a booking is confirmed.  It
// carries enough for downstream consumers (notifications, analytics) to act
// without reading the in-memory state.
type ReservationConfirmedEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	People        int    `json:"people"`
	Preference    string `json:"preference"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// BenefitMintedEvent is published when the loyalty program issues a reward.
type BenefitMintedEvent struct {
	Type      string `json:"type"`
	BenefitID string `json:"benefit_id"`
	Name      string `json:"name"`
	MintedAt  string `json:"minted_at"`
}
