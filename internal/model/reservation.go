package model

import "time"

// SeatingPreference is where the guest wants the table.
type SeatingPreference string

const (
	PreferenceInterior SeatingPreference = "Interior"
	PreferenceTerraza  SeatingPreference = "Terraza"
	PreferenceBarra    SeatingPreference = "Barra"
)

// SeatingPreferences lists every accepted preference.
var SeatingPreferences = []SeatingPreference{
	PreferenceInterior, PreferenceTerraza, PreferenceBarra,
}

// Valid reports whether p is one of the fixed preferences.
func (p SeatingPreference) Valid() bool {
	for _, v := range SeatingPreferences {
		if p == v {
			return true
		}
	}
	return false
}

// ReservationStatus is the stored lifecycle state of a booking.
// Transitions: pendiente→confirmada, pendiente→cancelada,
// confirmada→cancelada.  Cancelada is terminal.
type ReservationStatus string

const (
	StatusPendiente  ReservationStatus = "pendiente"
	StatusConfirmada ReservationStatus = "confirmada"
	StatusCancelada  ReservationStatus = "cancelada"

	// StatusFinalizada is a derived, display-only label for a reservation
	// that is still pendiente but dated before today.  It is never stored.
	StatusFinalizada ReservationStatus = "finalizada"
)

// ReservationContact is the contact snapshot captured at booking time.  It
// is independent of any account: later profile edits do not touch it, and a
// reservation can be made without being logged in at all.
type ReservationContact struct {
	Nombre    string
	Apellidos string
	Email     string
	Celular   string
}

// Reservation is a table-booking request.
//
// Fields:
//  ID         – unique identifier.
//  OwnerID    – identity that made the booking; empty for guest bookings.
//  Date       – reservation day (midnight, local).
//  Time       – half-hour slot in "HH:MM" form.
//  People     – party size, 1 to 8.
//  Preference – seating preference.
//  Reason     – visit reason, same enum as the loyalty ledger.
//  Comments   – optional free text.
//  Status     – stored lifecycle state.
//  Contact    – contact snapshot taken at creation.
//  CreatedAt  – creation timestamp.
type Reservation struct {
	ID         string
	OwnerID    string
	Date       time.Time
	Time       string
	People     int
	Preference SeatingPreference
	Reason     VisitReason
	Comments   string
	Status     ReservationStatus
	Contact    ReservationContact
	CreatedAt  time.Time
}

// DisplayStatus returns the status to show for the reservation as of the
// given day: a pendiente booking whose date has passed reads as finalizada
// without any stored transition.
func (r Reservation) DisplayStatus(today time.Time) ReservationStatus {
	if r.Status == StatusPendiente && r.Date.Before(today) {
		return StatusFinalizada
	}
	return r.Status
}
