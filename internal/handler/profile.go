package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gastroflow/gastroflow/internal/store"
)

// updateProfileReq carries a partial profile update.  Pointer fields
// distinguish "leave alone" from "set to empty"; the three password fields
// travel together or not at all.
type updateProfileReq struct {
	Nombre          *string `json:"nombre"`
	Apellidos       *string `json:"apellidos"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Celular         *string `json:"celular"`
	Comuna          *string `json:"comuna"`
	Instagram       *string `json:"instagram"`
	Promociones     *bool   `json:"promociones"`

	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// UpdateProfile merges changed fields into the current identity.  Email is
// immutable and silently ignored if sent; contact snapshots on existing
// reservations are unaffected.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	id, err := h.Session.Identity.UpdateProfile(store.UpdateInput{
		Nombre:             req.Nombre,
		Apellidos:          req.Apellidos,
		FechaNacimiento:    req.FechaNacimiento,
		Celular:            req.Celular,
		Comuna:             req.Comuna,
		Instagram:          req.Instagram,
		Promociones:        req.Promociones,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toIdentityResp(id))
}
