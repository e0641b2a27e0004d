package calculation_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/api"
	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
	"ustat/internal/services/calculation"
	"ustat/internal/store"
)

func newService(t *testing.T) *calculation.Service {
	t.Helper()
	h := mockapitest.NewHarness(t, mockapi.Options{})
	return calculation.New(h.API)
}

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestInfaz(t *testing.T) {
	svc := newService(t)
	res, err := svc.Infaz(context.Background(), domain.InfazRequest{
		Convict:  domain.Convict{BirthDate: date(t, "1990-05-01")},
		Crime:    domain.Crime{Type: "Kasten Yaralama", Date: date(t, "2024-01-01")},
		Sentence: domain.Sentence{Type: string(domain.PunishmentFixedTerm), Years: 2},
		Deductions: []domain.Deduction{
			{Type: "Gözaltı", StartDate: date(t, "2024-01-01"), EndDate: date(t, "2024-01-05"), TotalDays: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Süreli Hapis", res["cezaType"])
	assert.EqualValues(t, 730, res["toplamCezaGun"])
	assert.EqualValues(t, 360, res["yatarGun"])
}

func TestInfaz_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Infaz(ctx, domain.InfazRequest{Crime: domain.Crime{Type: "Hırsızlık"}})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "ceza.type", ve.Field)

	_, err = svc.Infaz(ctx, domain.InfazRequest{Sentence: domain.Sentence{Type: string(domain.PunishmentLife)}})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "suc.type", ve.Field)
}

func TestVekaletUcreti(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	res, err := svc.VekaletUcreti(ctx, domain.VekaletRequest{Monetary: true, Amount: 1_000_000})
	require.NoError(t, err)
	assert.EqualValues(t, 160000, res["vekaletUcreti"])

	res, err = svc.VekaletUcreti(ctx, domain.VekaletRequest{Court: "sulh-hukuk"})
	require.NoError(t, err)
	assert.EqualValues(t, 18000, res["vekaletUcreti"])

	_, err = svc.VekaletUcreti(ctx, domain.VekaletRequest{Monetary: true})
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.VekaletUcreti(ctx, domain.VekaletRequest{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestHarcGider(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	res, err := svc.HarcGider(ctx, domain.HarcGiderRequest{CaseValue: 100000, Parties: 2, Witnesses: 3})
	require.NoError(t, err)
	assert.Equal(t, calculation.DefaultCourtType, res["mahkemeTuru"])
	// Witnesses are dropped while the option is off.
	assert.EqualValues(t, 360, res["giderler"])

	_, err = svc.HarcGider(ctx, domain.HarcGiderRequest{CaseValue: 100000, HasWitnesses: true})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "tanikSayisi", ve.Field)

	_, err = svc.HarcGider(ctx, domain.HarcGiderRequest{CaseValue: 100000, HasExperts: true})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "bilirkisiSayisi", ve.Field)

	_, err = svc.HarcGider(ctx, domain.HarcGiderRequest{})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "davaValue", ve.Field)
}

func TestMaas(t *testing.T) {
	svc := newService(t)
	res, err := svc.Maas(context.Background(), domain.MaasRequest{GrossSalary: 30000})
	require.NoError(t, err)
	assert.EqualValues(t, 30000, res["brutMaas"])
	assert.Contains(t, res, "netMaas")

	_, err = svc.Maas(context.Background(), domain.MaasRequest{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestIscilikAlacaklari(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	res, err := svc.IscilikAlacaklari(ctx, domain.IscilikRequest{
		GrossSalary: 30000,
		StartDate:   date(t, "2020-01-01"),
		EndDate:     date(t, "2024-01-01"),
		Severance:   true,
	})
	require.NoError(t, err)
	assert.Contains(t, res, "kidemTazminati")
	assert.NotContains(t, res, "ihbarTazminati")

	_, err = svc.IscilikAlacaklari(ctx, domain.IscilikRequest{
		GrossSalary: 30000,
		StartDate:   date(t, "2024-01-01"),
		EndDate:     date(t, "2024-01-01"),
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "iseBaslamaTarihi", ve.Field)
}

func TestTrafikKazasi(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	valid := domain.TrafikRequest{
		BirthDate:    date(t, "1985-03-10"),
		AccidentDate: date(t, "2025-03-10"),
		Gender:       "K",
		Disability:   20,
		Income:       25000,
		FaultRatio:   0,
	}

	res, err := svc.TrafikKazasi(ctx, valid)
	require.NoError(t, err)
	assert.EqualValues(t, 25, res["calismaYili"])

	cases := map[string]struct {
		mutate func(*domain.TrafikRequest)
		field  string
	}{
		"zero disability":  {func(r *domain.TrafikRequest) { r.Disability = 0 }, "maluliyet"},
		"disability > 100": {func(r *domain.TrafikRequest) { r.Disability = 100.5 }, "maluliyet"},
		"no income":        {func(r *domain.TrafikRequest) { r.Income = 0 }, "gelir"},
		"fault > 100":      {func(r *domain.TrafikRequest) { r.FaultRatio = 101 }, "kusurOrani"},
		"negative fault":   {func(r *domain.TrafikRequest) { r.FaultRatio = -1 }, "kusurOrani"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			_, err := svc.TrafikKazasi(ctx, r)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	full := valid
	full.Disability = 100
	full.FaultRatio = 100
	_, err = svc.TrafikKazasi(ctx, full)
	require.NoError(t, err)
}

func TestResultIsPassedThrough(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`42.5`))
	}))
	t.Cleanup(srv.Close)

	c, err := api.New(api.Options{BaseURL: srv.URL, Tokens: store.NewTokens(store.NewMemoryKV())})
	require.NoError(t, err)
	res, err := calculation.New(c).Maas(context.Background(), domain.MaasRequest{GrossSalary: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.CalculationResult{"result": 42.5}, res)
	assert.EqualValues(t, 1, body["brutMaas"])
}
