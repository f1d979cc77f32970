package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/middleware"
	"github.com/gastroflow/gastroflow/internal/store"
)

func doJSONWithID(e *echo.Echo, h echo.HandlerFunc, method, target, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

// doJSONAs runs the handler as if the session middleware had resolved the
// given identity id from a bearer token.
func doJSONAs(e *echo.Echo, h echo.HandlerFunc, method, target, body, identityID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.IdentityIDKey, identityID)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func doJSONWithIDAs(e *echo.Echo, h echo.HandlerFunc, method, target, id, identityID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.IdentityIDKey, identityID)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func loginAna(t *testing.T, s *store.Session) string {
	t.Helper()
	id, err := s.Identity.Login(context.Background(), "ana.perez@example.com", "password")
	require.NoError(t, err)
	return id.ID
}

func reservationBody(date string) string {
	return `{"date":"` + date + `","time":"20:00","people":2,"preference":"Terraza","reason":"Cita",` +
		`"nombre":"Ana","apellidos":"Pérez","email":"ana.perez@example.com","celular":"56912345678"}`
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 3).Format("2006-01-02")
}

func TestCreateReservationHandler(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())

	rec := doJSON(e, h.Create, http.MethodPost, "/v1/reservations", reservationBody(futureDate()))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Contact struct {
			Celular string `json:"celular"`
		} `json:"contact"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "pendiente", resp.Status)
	require.Equal(t, "+569-12345678", resp.Contact.Celular)
}

func TestCreateReservationHandlerTooManyPeople(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())

	body := strings.Replace(reservationBody(futureDate()), `"people":2`, `"people":9`, 1)
	rec := doJSON(e, h.Create, http.MethodPost, "/v1/reservations", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "people", resp["field"])
}

func TestCreateReservationHandlerBadDate(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())

	for _, date := range []string{"not-a-date", "", time.Now().AddDate(0, 0, -1).Format("2006-01-02")} {
		rec := doJSON(e, h.Create, http.MethodPost, "/v1/reservations", reservationBody(date))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "date", resp["field"])
	}
}

func TestReservationLifecycleHandlers(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())
	anaID := loginAna(t, s)

	rec := doJSONAs(e, h.Create, http.MethodPost, "/v1/reservations", reservationBody(futureDate()), anaID)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSONWithIDAs(e, h.Confirm, http.MethodPost, "/v1/reservations/x/confirm", created.ID, anaID)
	require.Equal(t, http.StatusOK, rec.Code)
	var confirmed struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmed))
	require.Equal(t, "confirmada", confirmed.Status)

	rec = doJSONWithIDAs(e, h.Cancel, http.MethodPost, "/v1/reservations/x/cancel", created.ID, anaID)
	require.Equal(t, http.StatusOK, rec.Code)

	// cancelada is terminal
	rec = doJSONWithIDAs(e, h.Cancel, http.MethodPost, "/v1/reservations/x/cancel", created.ID, anaID)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSONWithIDAs(e, h.Confirm, http.MethodPost, "/v1/reservations/x/confirm", "missing", anaID)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReservationLifecycleOwnershipEnforced(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())
	anaID := loginAna(t, s)

	// guest booking: no session token at creation, so it has no owner
	rec := doJSON(e, h.Create, http.MethodPost, "/v1/reservations", reservationBody(futureDate()))
	require.Equal(t, http.StatusCreated, rec.Code)
	var guest struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &guest))

	rec = doJSONWithIDAs(e, h.Confirm, http.MethodPost, "/v1/reservations/x/confirm", guest.ID, anaID)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSONWithIDAs(e, h.Cancel, http.MethodPost, "/v1/reservations/x/cancel", guest.ID, anaID)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// another identity's booking is just as invisible
	rec = doJSONAs(e, h.Create, http.MethodPost, "/v1/reservations", reservationBody(futureDate()), "other-owner")
	require.Equal(t, http.StatusCreated, rec.Code)
	var other struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &other))

	rec = doJSONWithIDAs(e, h.Confirm, http.MethodPost, "/v1/reservations/x/confirm", other.ID, anaID)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReservationSessionRequired(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())
	anaID := loginAna(t, s)

	rec := doJSONAs(e, h.Create, http.MethodPost, "/v1/reservations", reservationBody(futureDate()), anaID)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSONAs(e, h.List, http.MethodGet, "/v1/reservations", "", anaID)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"total":1`)

	// a token naming anyone but the live session's identity is rejected
	rec = doJSONAs(e, h.List, http.MethodGet, "/v1/reservations", "", "someone-else")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// an unexpired token from before logout no longer opens the session views
	s.Identity.Logout()
	rec = doJSONAs(e, h.List, http.MethodGet, "/v1/reservations", "", anaID)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSONWithIDAs(e, h.Confirm, http.MethodPost, "/v1/reservations/x/confirm", "any", anaID)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSONWithIDAs(e, h.Cancel, http.MethodPost, "/v1/reservations/x/cancel", "any", anaID)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSlotsHandler(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())

	rec := doJSON(e, h.Slots, http.MethodGet, "/v1/reservations/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 9)
	require.Equal(t, "18:00", resp.Slots[0])
	require.Equal(t, "22:00", resp.Slots[8])
}

func TestDraftHandlers(t *testing.T) {
	e, s, _ := newTestEnv()
	h := NewReservationHandler(s, zap.NewNop())

	rec := doJSON(e, h.ConsumeDraft, http.MethodPost, "/v1/reservations/draft/consume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"staged":false`)

	rec = doJSON(e, h.StageDraft, http.MethodPost, "/v1/reservations/draft",
		`{"date":"2026-10-01","time":"20:30","people":4,"preference":"Terraza","reason":"Celebración"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, h.ConsumeDraft, http.MethodPost, "/v1/reservations/draft/consume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Staged bool `json:"staged"`
		Draft  struct {
			Time   string `json:"time"`
			People int    `json:"people"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Staged)
	require.Equal(t, "20:30", resp.Draft.Time)
	require.Equal(t, 4, resp.Draft.People)

	// consumed exactly once
	rec = doJSON(e, h.ConsumeDraft, http.MethodPost, "/v1/reservations/draft/consume", "")
	require.Contains(t, rec.Body.String(), `"staged":false`)
}
