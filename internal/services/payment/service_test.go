package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
	"ustat/internal/services/payment"
)

func card() domain.PaymentDetails {
	return domain.PaymentDetails{
		CardHolder:  "Ayşe Yılmaz",
		CardNumber:  "4111 1111 1111 1111",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
		CVC:         "123",
	}
}

func TestMethods_AddListDelete(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	svc := payment.New(h.API)
	ctx := context.Background()

	empty, err := svc.Methods(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	m, err := svc.AddMethod(ctx, card())
	require.NoError(t, err)
	assert.Equal(t, "1111", m.Last4)
	assert.Equal(t, "visa", m.Brand)
	assert.True(t, m.Default)

	list, err := svc.Methods(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, m.ID, list[0].ID)

	require.NoError(t, svc.DeleteMethod(ctx, m.ID))
	err = svc.DeleteMethod(ctx, m.ID)
	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Status)
}

func TestAddMethod_Validation(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	svc := payment.New(h.API)
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*domain.PaymentDetails)
		field  string
	}{
		"holder":  {func(p *domain.PaymentDetails) { p.CardHolder = "" }, "cardHolder"},
		"luhn":    {func(p *domain.PaymentDetails) { p.CardNumber = "4111111111111112" }, "cardNumber"},
		"short":   {func(p *domain.PaymentDetails) { p.CardNumber = "4111" }, "cardNumber"},
		"month":   {func(p *domain.PaymentDetails) { p.ExpiryMonth = 13 }, "expiryMonth"},
		"expired": {func(p *domain.PaymentDetails) { p.ExpiryYear = 2001 }, "expiryYear"},
		"cvc":     {func(p *domain.PaymentDetails) { p.CVC = "12a" }, "cvc"},
		"stored":  {func(p *domain.PaymentDetails) { p.PaymentMethodID = "pm_1" }, "paymentMethodId"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := card()
			tc.mutate(&p)
			_, err := svc.AddMethod(ctx, p)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestValidate_StoredMethodSkipsCardChecks(t *testing.T) {
	assert.NoError(t, payment.Validate(domain.PaymentDetails{PaymentMethodID: "pm_1"}))
	assert.NoError(t, payment.Validate(card()))
	assert.Error(t, payment.Validate(domain.PaymentDetails{}))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "4111111111111111", payment.Digits("4111-1111 1111-1111"))
}

func TestHistory_RequiresSession(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	_, err := payment.New(h.API).History(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
