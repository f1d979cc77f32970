package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/model"
)

func TestRedeemMovesBenefit(t *testing.T) {
	issuer := NewBenefitIssuer(zap.NewNop())
	issuer.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local) }
	issuer.OnVisitRegistered(5)

	active, _ := issuer.Active(1)
	require.Len(t, active, 1)
	id := active[0].ID

	require.NoError(t, issuer.Redeem(id))

	active, totalActive := issuer.Active(1)
	require.Empty(t, active)
	require.Equal(t, 0, totalActive)

	used, totalUsed := issuer.Used(1)
	require.Equal(t, 1, totalUsed)
	require.Equal(t, id, used[0].ID)
	require.Equal(t, model.BenefitUsed, used[0].Status)
	require.Equal(t, "Utilizado el 15-06-2024", used[0].Description)
}

func TestRedeemTwiceFails(t *testing.T) {
	issuer := NewBenefitIssuer(zap.NewNop())
	issuer.OnVisitRegistered(5)
	active, _ := issuer.Active(1)
	id := active[0].ID

	require.NoError(t, issuer.Redeem(id))
	require.ErrorIs(t, issuer.Redeem(id), ErrNotFound)
}

func TestRedeemUnknownID(t *testing.T) {
	issuer := NewBenefitIssuer(zap.NewNop())
	require.ErrorIs(t, issuer.Redeem("missing"), ErrNotFound)
}

func TestUsedOrderMostRecentFirst(t *testing.T) {
	issuer := NewBenefitIssuer(zap.NewNop())
	issuer.OnVisitRegistered(5)
	issuer.OnVisitRegistered(10)
	active, _ := issuer.Active(1)
	require.Len(t, active, 2)

	require.NoError(t, issuer.Redeem(active[0].ID))
	require.NoError(t, issuer.Redeem(active[1].ID))

	used, _ := issuer.Used(1)
	require.Equal(t, active[1].ID, used[0].ID) // redeemed last, listed first
	require.Equal(t, active[0].ID, used[1].ID)
}

func TestMintedHook(t *testing.T) {
	issuer := NewBenefitIssuer(zap.NewNop())
	var got []model.Benefit
	issuer.OnMinted(func(b model.Benefit) { got = append(got, b) })

	issuer.OnVisitRegistered(4)
	issuer.OnVisitRegistered(5)
	require.Len(t, got, 1)
	require.Equal(t, "40% de Descuento", got[0].Name)
}
