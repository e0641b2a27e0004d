package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
	"ustat/internal/services/payment"
	"ustat/internal/services/subscription"
)

func TestPackages(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	pkgs, err := subscription.New(h.API).Packages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	assert.Equal(t, "pro", pkgs[1].ID)
	assert.True(t, pkgs[1].Popular)
}

func TestSubscribeLifecycle(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	svc := subscription.New(h.API)
	ctx := context.Background()

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	m, err := payment.New(h.API).AddMethod(ctx, domain.PaymentDetails{
		CardHolder:  "Ayşe Yılmaz",
		CardNumber:  "5555555555554444",
		ExpiryMonth: 1,
		ExpiryYear:  time.Now().Year() + 1,
		CVC:         "321",
	})
	require.NoError(t, err)

	sub, err := svc.Subscribe(ctx, "pro", domain.PaymentDetails{PaymentMethodID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, "pro", sub.PackageID)
	assert.Equal(t, "active", sub.Status)

	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, sub.ID, cur.ID)

	history, err := payment.New(h.API).History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 499.0, history[0].Amount)

	require.NoError(t, svc.Cancel(ctx))
	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cur.Status)
	assert.False(t, cur.AutoRenew)
}

func TestSubscribe_Validation(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	svc := subscription.New(h.API)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, " ", domain.PaymentDetails{PaymentMethodID: "pm_1"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Subscribe(ctx, "pro", domain.PaymentDetails{CardNumber: "1234"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubscribe_UnknownPackage(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	_, err := subscription.New(h.API).Subscribe(context.Background(), "gold", domain.PaymentDetails{PaymentMethodID: "pm_1"})
	require.ErrorIs(t, err, domain.ErrServer)
	assert.Equal(t, "package not found", domain.UserMessage(err))
}
