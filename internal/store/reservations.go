package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/model"
	"github.com/gastroflow/gastroflow/internal/utils"
)

// Opening hours for the dining room.  Slots run every half hour from the
// opening hour through the closing hour inclusive.
const (
	OpenHour  = 18
	CloseHour = 22
)

// ReservationInput carries everything needed to create a booking.  Date is
// the reservation day; the contact block is snapshotted verbatim (after
// phone normalization) and never re-reads the profile later.
type ReservationInput struct {
	OwnerID    string
	Date       time.Time
	Time       string
	People     int
	Preference model.SeatingPreference
	Reason     model.VisitReason
	Comments   string
	Contact    model.ReservationContact
}

// ReservationBook holds every booking made in this process.  Reservations
// are never deleted; cancellation is a status change and "finalizada" is a
// derived display label, not a stored state.
type ReservationBook struct {
	mu           sync.Mutex
	reservations []model.Reservation
	slots        map[string]bool
	now          func() time.Time
	log          *zap.Logger

	// confirmed, when set, is notified after a successful confirmation.
	confirmed func(model.Reservation)
}

// NewReservationBook builds an empty book with the fixed slot table.
func NewReservationBook(log *zap.Logger) *ReservationBook {
	slots := make(map[string]bool)
	for _, s := range utils.TimeSlots(OpenHour, CloseHour) {
		slots[s] = true
	}
	return &ReservationBook{slots: slots, now: time.Now, log: log}
}

// OnConfirmed registers the hook called with each confirmed reservation.
func (b *ReservationBook) OnConfirmed(fn func(model.Reservation)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmed = fn
}

// Slots returns the bookable half-hour slots in order.
func (b *ReservationBook) Slots() []string {
	return utils.TimeSlots(OpenHour, CloseHour)
}

// today returns the current day at midnight in local time.
func (b *ReservationBook) today() time.Time {
	y, m, d := b.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Create validates the input and appends a new pendiente reservation.
// Validation stops at the first failing field, in the order the booking
// form presents them.  No authentication is required; OwnerID may be empty.
func (b *ReservationBook) Create(in ReservationInput) (model.Reservation, error) {
	if in.Date.IsZero() {
		return model.Reservation{}, invalidField("date", "la fecha es requerida")
	}
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(b.today()) {
		return model.Reservation{}, invalidField("date", "la fecha no puede estar en el pasado")
	}
	if !b.slots[in.Time] {
		return model.Reservation{}, invalidField("time", "la hora debe ser un horario disponible")
	}
	if in.People < 1 || in.People > 8 {
		return model.Reservation{}, invalidField("people", "la cantidad de personas debe estar entre 1 y 8")
	}
	if !in.Preference.Valid() {
		return model.Reservation{}, invalidField("preference", "la preferencia es requerida")
	}
	if !in.Reason.Valid() {
		return model.Reservation{}, invalidField("reason", "el motivo es requerido")
	}
	if in.Contact.Nombre == "" {
		return model.Reservation{}, invalidField("nombre", "nombre es requerido")
	}
	if in.Contact.Apellidos == "" {
		return model.Reservation{}, invalidField("apellidos", "apellidos son requeridos")
	}
	if !utils.ValidEmail(utils.NormalizeEmail(in.Contact.Email)) {
		return model.Reservation{}, invalidField("email", "email no válido")
	}
	phone, err := utils.NormalizePhone(in.Contact.Celular)
	if err != nil {
		return model.Reservation{}, invalidField("celular", "el celular debe tener 11 dígitos en total")
	}

	r := model.Reservation{
		ID:         uuid.NewString(),
		OwnerID:    in.OwnerID,
		Date:       day,
		Time:       in.Time,
		People:     in.People,
		Preference: in.Preference,
		Reason:     in.Reason,
		Comments:   in.Comments,
		Status:     model.StatusPendiente,
		Contact: model.ReservationContact{
			Nombre:    in.Contact.Nombre,
			Apellidos: in.Contact.Apellidos,
			Email:     utils.NormalizeEmail(in.Contact.Email),
			Celular:   phone,
		},
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	b.reservations = append(b.reservations, r)
	b.mu.Unlock()

	b.log.Info("reservation created",
		zap.String("reservation_id", r.ID),
		zap.String("date", r.Date.Format("2006-01-02")),
		zap.String("time", r.Time),
		zap.Int("people", r.People))
	return r, nil
}

// Confirm transitions pendiente→confirmada.  A reservation that is not
// pendiente, or whose date has already passed, cannot be confirmed; the
// latter only ever reads as finalizada.
func (b *ReservationBook) Confirm(id string) (model.Reservation, error) {
	b.mu.Lock()
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return model.Reservation{}, ErrNotFound
	}
	r := b.reservations[i]
	if r.Status != model.StatusPendiente || r.Date.Before(b.today()) {
		b.mu.Unlock()
		return model.Reservation{}, ErrInvalidState
	}
	b.reservations[i].Status = model.StatusConfirmada
	r = b.reservations[i]
	hook := b.confirmed
	b.mu.Unlock()

	b.log.Info("reservation confirmed", zap.String("reservation_id", id))
	if hook != nil {
		hook(r)
	}
	return r, nil
}

// Cancel transitions pendiente or confirmada to cancelada.  Cancelada is
// terminal: a second cancel reports ErrInvalidState instead of silently
// succeeding.  A past-dated pendiente may still be cancelled.
func (b *ReservationBook) Cancel(id string) (model.Reservation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return model.Reservation{}, ErrNotFound
	}
	if b.reservations[i].Status == model.StatusCancelada {
		return model.Reservation{}, ErrInvalidState
	}
	b.reservations[i].Status = model.StatusCancelada
	b.log.Info("reservation cancelled", zap.String("reservation_id", id))
	return b.reservations[i], nil
}

// ConfirmFor is Confirm scoped to an owner.  Ids owned by someone else, by
// a guest booking or by nobody at all read as not found.
func (b *ReservationBook) ConfirmFor(id, ownerID string) (model.Reservation, error) {
	if !b.ownedBy(id, ownerID) {
		return model.Reservation{}, ErrNotFound
	}
	return b.Confirm(id)
}

// CancelFor is Cancel scoped to an owner, with the same not-found rule as
// ConfirmFor.
func (b *ReservationBook) CancelFor(id, ownerID string) (model.Reservation, error) {
	if !b.ownedBy(id, ownerID) {
		return model.Reservation{}, ErrNotFound
	}
	return b.Cancel(id)
}

func (b *ReservationBook) ownedBy(id, ownerID string) bool {
	if ownerID == "" {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	return i >= 0 && b.reservations[i].OwnerID == ownerID
}

// Get returns a reservation by id.
func (b *ReservationBook) Get(id string) (model.Reservation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return model.Reservation{}, ErrNotFound
	}
	return b.reservations[i], nil
}

// List returns one page of the owner's reservations sorted by date
// descending, plus the total count for that owner.
func (b *ReservationBook) List(ownerID string, page int) ([]model.Reservation, int) {
	b.mu.Lock()
	owned := make([]model.Reservation, 0)
	for _, r := range b.reservations {
		if r.OwnerID == ownerID && ownerID != "" {
			owned = append(owned, r)
		}
	}
	b.mu.Unlock()

	sort.SliceStable(owned, func(i, j int) bool {
		if owned[i].Date.Equal(owned[j].Date) {
			return owned[i].Time > owned[j].Time
		}
		return owned[i].Date.After(owned[j].Date)
	})
	return paginate(owned, page), len(owned)
}

// Today exposes the book's notion of the current day, for display-status
// derivation at the API boundary.
func (b *ReservationBook) Today() time.Time {
	return b.today()
}

func (b *ReservationBook) indexLocked(id string) int {
	for i := range b.reservations {
		if b.reservations[i].ID == id {
			return i
		}
	}
	return -1
}
