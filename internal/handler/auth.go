package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/internal/store"
	"github.com/gastroflow/gastroflow/internal/utils"
)

// AuthHandler bundles dependencies for the auth and profile endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Session *store.Session
	Log     *zap.Logger
}

func NewAuthHandler(cfg config.Config, s *store.Session, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Session: s, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Celular         string `json:"celular"`
	Comuna          string `json:"comuna"`
	Instagram       string `json:"instagram"`
	Promociones     *bool  `json:"promociones"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User    identityResp `json:"user"`
	Session sessionPart  `json:"session"`
}

// Register creates an account, makes it the current identity and returns a
// session token.  Field validation happens in the identity store so the
// response can name the offending field.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	promos := true
	if req.Promociones != nil {
		promos = *req.Promociones
	}
	id, err := h.Session.Identity.Register(c.Request().Context(), store.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Nombre:          req.Nombre,
		Apellidos:       req.Apellidos,
		FechaNacimiento: req.FechaNacimiento,
		Celular:         req.Celular,
		Comuna:          req.Comuna,
		Instagram:       req.Instagram,
		Promociones:     promos,
	})
	if err != nil {
		return writeError(c, err)
	}
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, id.ID, h.Cfg.SessionTTLMin)
	if err != nil {
		h.Log.Error("issue session token failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
	}
	return c.JSON(http.StatusCreated, authResp{
		User:    toIdentityResp(id),
		Session: sessionPart{Token: tok.Token, Expires: tok.Exp},
	})
}

// Login verifies the credentials and returns the identity plus a session
// token.  Wrong credentials get a 401, never a hint about which part failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	id, err := h.Session.Identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, id.ID, h.Cfg.SessionTTLMin)
	if err != nil {
		h.Log.Error("issue session token failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:    toIdentityResp(id),
		Session: sessionPart{Token: tok.Token, Expires: tok.Exp},
	})
}

// Logout ends the session.  Idempotent: logging out twice is fine.  The
// "delete account" action in the UI also lands here; nothing is persisted,
// so there is nothing else to remove.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Session.Identity.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current identity.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := h.Session.Identity.Current()
	if !ok {
		return writeError(c, store.ErrNoIdentity)
	}
	return c.JSON(http.StatusOK, toIdentityResp(id))
}
