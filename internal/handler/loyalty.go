package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/model"
	"github.com/gastroflow/gastroflow/internal/store"
)

// LoyaltyHandler serves the visit ledger and the benefit program.
type LoyaltyHandler struct {
	Session *store.Session
	Log     *zap.Logger
}

func NewLoyaltyHandler(s *store.Session, log *zap.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{Session: s, Log: log}
}

type registerVisitReq struct {
	Reason string `json:"reason"`
}

// RegisterVisit appends one visit to the ledger.  When the new count hits a
// multiple of five the issuer mints a benefit in the same call, so the
// response reports whether that happened for the UI to celebrate.
func (h *LoyaltyHandler) RegisterVisit(c echo.Context) error {
	if _, ok := h.Session.Identity.Current(); !ok {
		return writeError(c, store.ErrNoIdentity)
	}
	var req registerVisitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	v, err := h.Session.Visits.RegisterVisit(model.VisitReason(req.Reason))
	if err != nil {
		return writeError(c, err)
	}
	count := h.Session.Visits.Count()
	return c.JSON(http.StatusCreated, echo.Map{
		"visit":          toVisitResp(v),
		"visitCount":     count,
		"benefitEarned":  count > 0 && count%store.BenefitThreshold == 0,
		"visitsToReward": store.BenefitThreshold - count%store.BenefitThreshold,
	})
}

// ListVisits returns one page of the ledger, most recent first.
func (h *LoyaltyHandler) ListVisits(c echo.Context) error {
	if _, ok := h.Session.Identity.Current(); !ok {
		return writeError(c, store.ErrNoIdentity)
	}
	page := pageParam(c)
	visits, total := h.Session.Visits.Visits(page)
	out := make([]visitResp, 0, len(visits))
	for _, v := range visits {
		out = append(out, toVisitResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"visits": out,
		"total":  total,
		"page":   page,
	})
}

// ActiveBenefits returns one page of redeemable benefits.
func (h *LoyaltyHandler) ActiveBenefits(c echo.Context) error {
	return h.listBenefits(c, h.Session.Benefits.Active)
}

// UsedBenefits returns one page of redeemed benefits, most recent first.
func (h *LoyaltyHandler) UsedBenefits(c echo.Context) error {
	return h.listBenefits(c, h.Session.Benefits.Used)
}

func (h *LoyaltyHandler) listBenefits(c echo.Context, list func(int) ([]model.Benefit, int)) error {
	if _, ok := h.Session.Identity.Current(); !ok {
		return writeError(c, store.ErrNoIdentity)
	}
	page := pageParam(c)
	benefits, total := list(page)
	out := make([]benefitResp, 0, len(benefits))
	for _, b := range benefits {
		out = append(out, toBenefitResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"benefits": out,
		"total":    total,
		"page":     page,
	})
}

// Redeem marks a benefit as used.  A second redeem of the same id is a 404:
// the benefit is no longer in the active set.
func (h *LoyaltyHandler) Redeem(c echo.Context) error {
	if _, ok := h.Session.Identity.Current(); !ok {
		return writeError(c, store.ErrNoIdentity)
	}
	if err := h.Session.Benefits.Redeem(c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
