package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gastroflow/gastroflow/internal/model"
	"github.com/gastroflow/gastroflow/internal/store"
	"github.com/gastroflow/gastroflow/internal/utils"
)

// writeError maps a domain error onto the HTTP response.  Validation errors
// name the offending field so the UI can surface them inline; everything
// else becomes a toast-style notice client-side.
func writeError(c echo.Context, err error) error {
	if ve, ok := store.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
	}
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "credenciales inválidas"})
	case errors.Is(err, store.ErrNoIdentity):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no hay sesión activa"})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no encontrado"})
	case errors.Is(err, store.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": "transición de estado no permitida"})
	case errors.Is(err, store.ErrOpInFlight):
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "operación en curso, intenta de nuevo"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusRequestTimeout, echo.Map{"error": "solicitud cancelada"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
}

// identityResp is the external representation of an Identity.  Dates are
// shown DD-MM-YYYY; optional fields are omitted when absent.
type identityResp struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Nombre          string `json:"nombre,omitempty"`
	Apellidos       string `json:"apellidos,omitempty"`
	FechaNacimiento string `json:"fechaNacimiento,omitempty"`
	Comuna          string `json:"comuna,omitempty"`
	Instagram       string `json:"instagram,omitempty"`
	Celular         string `json:"celular,omitempty"`
	Promociones     bool   `json:"promociones"`
}

func toIdentityResp(id model.Identity) identityResp {
	return identityResp{
		ID:              id.ID,
		Email:           id.Email,
		Nombre:          id.Nombre,
		Apellidos:       id.Apellidos,
		FechaNacimiento: utils.DisplayBirthDate(id.FechaNacimiento),
		Comuna:          id.Comuna,
		Instagram:       id.Instagram,
		Celular:         id.Celular,
		Promociones:     id.Promociones,
	}
}

// contactResp mirrors the contact snapshot embedded in a reservation.
type contactResp struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Celular   string `json:"celular"`
}

// reservationResp is the external representation of a Reservation.  Status
// is the derived display status, so a past-dated pendiente reads as
// finalizada without any stored change.
type reservationResp struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	Time       string      `json:"time"`
	People     int         `json:"people"`
	Preference string      `json:"preference"`
	Reason     string      `json:"reason"`
	Comments   string      `json:"comments,omitempty"`
	Status     string      `json:"status"`
	Contact    contactResp `json:"contact"`
}

func toReservationResp(r model.Reservation, today time.Time) reservationResp {
	return reservationResp{
		ID:         r.ID,
		Date:       r.Date.Format("2006-01-02"),
		Time:       r.Time,
		People:     r.People,
		Preference: string(r.Preference),
		Reason:     string(r.Reason),
		Comments:   r.Comments,
		Status:     string(r.DisplayStatus(today)),
		Contact: contactResp{
			Nombre:    r.Contact.Nombre,
			Apellidos: r.Contact.Apellidos,
			Email:     r.Contact.Email,
			Celular:   r.Contact.Celular,
		},
	}
}

// benefitResp is the external representation of a Benefit.
type benefitResp struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	QRCode      string `json:"qrCode,omitempty"`
	Status      string `json:"status"`
}

func toBenefitResp(b model.Benefit) benefitResp {
	return benefitResp{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		QRCode:      b.QRCode,
		Status:      string(b.Status),
	}
}

// visitResp is the external representation of a Visit.
type visitResp struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func toVisitResp(v model.Visit) visitResp {
	return visitResp{
		ID:     v.ID,
		Date:   v.Date.Format(time.RFC3339),
		Reason: string(v.Reason),
	}
}

// pageParam reads the 1-based ?page= query parameter, defaulting to 1.
func pageParam(c echo.Context) int {
	if p := c.QueryParam("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
