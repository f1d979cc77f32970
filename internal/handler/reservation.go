package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/middleware"
	"github.com/gastroflow/gastroflow/internal/model"
	"github.com/gastroflow/gastroflow/internal/store"
)

// ReservationHandler serves booking creation, the status lifecycle, the
// per-owner listing and the pending-draft relay.
type ReservationHandler struct {
	Session *store.Session
	Log     *zap.Logger
}

func NewReservationHandler(s *store.Session, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Session: s, Log: log}
}

type createReservationReq struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
	People     int    `json:"people"`
	Preference string `json:"preference"`
	Reason     string `json:"reason"`
	Comments   string `json:"comments"`
	Nombre     string `json:"nombre"`
	Apellidos  string `json:"apellidos"`
	Email      string `json:"email"`
	Celular    string `json:"celular"`
}

// Create books a table.  No session is required; when one is present the
// reservation is linked to the identity so it shows up in the listing.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	var date time.Time
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "la fecha es requerida", "field": "date"})
		}
		date = parsed
	}
	r, err := h.Session.Reservations.Create(store.ReservationInput{
		OwnerID:    middleware.IdentityID(c),
		Date:       date,
		Time:       req.Time,
		People:     req.People,
		Preference: model.SeatingPreference(req.Preference),
		Reason:     model.VisitReason(req.Reason),
		Comments:   req.Comments,
		Contact: model.ReservationContact{
			Nombre:    req.Nombre,
			Apellidos: req.Apellidos,
			Email:     req.Email,
			Celular:   req.Celular,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationResp(r, h.Session.Reservations.Today()))
}

// requireOwner returns the caller's identity id.  The session must be live
// and belong to the identity the bearer token names; a token issued before
// a logout no longer counts as a session.
func (h *ReservationHandler) requireOwner(c echo.Context) (string, error) {
	cur, ok := h.Session.Identity.Current()
	if !ok || cur.ID != middleware.IdentityID(c) {
		return "", store.ErrNoIdentity
	}
	return cur.ID, nil
}

// Confirm transitions a pendiente reservation to confirmada.  Only the
// owner may confirm; anyone else sees a 404.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	ownerID, err := h.requireOwner(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.Session.Reservations.ConfirmFor(c.Param("id"), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(r, h.Session.Reservations.Today()))
}

// Cancel transitions a pendiente or confirmada reservation to cancelada,
// under the same ownership rule as Confirm.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ownerID, err := h.requireOwner(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.Session.Reservations.CancelFor(c.Param("id"), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(r, h.Session.Reservations.Today()))
}

// List returns one page of the caller's reservations, newest date first.
func (h *ReservationHandler) List(c echo.Context) error {
	ownerID, err := h.requireOwner(c)
	if err != nil {
		return writeError(c, err)
	}
	page := pageParam(c)
	today := h.Session.Reservations.Today()
	reservations, total := h.Session.Reservations.List(ownerID, page)
	out := make([]reservationResp, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationResp(r, today))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": out,
		"total":        total,
		"page":         page,
	})
}

// Slots returns the bookable half-hour time slots.
func (h *ReservationHandler) Slots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"slots": h.Session.Reservations.Slots()})
}

// StageDraft stores an in-progress booking draft before the guest is sent
// off to authenticate.  Any previously staged draft is overwritten.
func (h *ReservationHandler) StageDraft(c echo.Context) error {
	var draft model.PendingDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	h.Session.Relay.Stage(c.Request().Context(), draft)
	return c.NoContent(http.StatusNoContent)
}

// ConsumeDraft returns the staged draft and deletes it in the same step.
// With nothing staged it answers 200 with staged=false — an expected case,
// not an error.
func (h *ReservationHandler) ConsumeDraft(c echo.Context) error {
	draft, ok := h.Session.Relay.Consume(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"staged": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"staged": true, "draft": draft})
}
