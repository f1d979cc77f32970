package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/internal/store"
	"github.com/gastroflow/gastroflow/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		JWTSecret:     "test-secret",
		SessionTTLMin: 60,
		BcryptCost:    4,
		AuthLatency:   0,
	}
}

func newTestEnv() (*echo.Echo, *store.Session, config.Config) {
	e := echo.New()
	e.Validator = NewCustomValidator()
	cfg := testConfig()
	s := store.NewSession(cfg.AuthLatency, cfg.BcryptCost, nil, zap.NewNop())
	return e, s, cfg
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRegisterHandler(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	body := `{"email":"nuevo@example.com","password":"longenough1","nombre":"Juan","apellidos":"Soto","fechaNacimiento":"01-01-1990","celular":"56912345678"}`
	rec := doJSON(e, h.Register, http.MethodPost, "/v1/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			ID              string `json:"id"`
			Email           string `json:"email"`
			Celular         string `json:"celular"`
			FechaNacimiento string `json:"fechaNacimiento"`
			Promociones     bool   `json:"promociones"`
		} `json:"user"`
		Session struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "nuevo@example.com", resp.User.Email)
	require.Equal(t, "+569-12345678", resp.User.Celular)
	require.Equal(t, "01-01-1990", resp.User.FechaNacimiento)
	require.True(t, resp.User.Promociones) // defaults on when omitted

	// token must round-trip through the session middleware's parser
	id, err := utils.ParseSessionToken(cfg.JWTSecret, resp.Session.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, id)
}

func TestRegisterHandlerFieldError(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	body := `{"email":"nuevo@example.com","password":"short","nombre":"Juan","apellidos":"Soto","fechaNacimiento":"01-01-1990","celular":"56912345678"}`
	rec := doJSON(e, h.Register, http.MethodPost, "/v1/auth/register", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "password", resp["field"])
	require.NotEmpty(t, resp["error"])
}

func TestLoginHandler(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	rec := doJSON(e, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"ana.perez@example.com","password":"password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			Nombre string `json:"nombre"`
		} `json:"user"`
		Session struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Ana", resp.User.Nombre)
	require.NotEmpty(t, resp.Session.Token)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	rec := doJSON(e, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"ana.perez@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerMissingFields(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	rec := doJSON(e, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"ana.perez@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeAndLogout(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	rec := doJSON(e, h.Me, http.MethodGet, "/v1/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	doJSON(e, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"admin@admin.com","password":"admin"}`)

	rec = doJSON(e, h.Me, http.MethodGet, "/v1/me", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, h.Logout, http.MethodPost, "/v1/auth/logout", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, h.Me, http.MethodGet, "/v1/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfileHandler(t *testing.T) {
	e, s, cfg := newTestEnv()
	h := NewAuthHandler(cfg, s, zap.NewNop())

	doJSON(e, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"ana.perez@example.com","password":"password"}`)

	rec := doJSON(e, h.UpdateProfile, http.MethodPatch, "/v1/profile", `{"comuna":"Ñuñoa"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Comuna string `json:"comuna"`
		Nombre string `json:"nombre"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Ñuñoa", resp.Comuna)
	require.Equal(t, "Ana", resp.Nombre)
}
