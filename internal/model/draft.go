package model

// PendingDraft is a transient snapshot of in-progress reservation fields,
// staged when the booking flow is interrupted by login or registration and
// replayed once, pre-filling the form afterwards.  Losing a draft is
// harmless; the guest simply types the data again.
type PendingDraft struct {
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	People     int               `json:"people"`
	Preference SeatingPreference `json:"preference"`
	Reason     VisitReason       `json:"reason"`
	Comments   string            `json:"comments,omitempty"`
}
