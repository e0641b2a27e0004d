package mockapi

import (
	"math"
	"net/http"

	"ustat/internal/domain"
)

// Flat rates used by the fake calculators.
const (
	sgkEmployeeRate  = 0.14
	unemploymentRate = 0.01
	incomeTaxRate    = 0.15
	stampTaxRate     = 0.00759
	minimumFee       = 30000.0
	fixedCourtFee    = 615.40
	proportionalRate = 0.06831
	witnessFee       = 200.0
	expertFee        = 3000.0
	siteVisitFee     = 2500.0
	partyServiceFee  = 180.0
)

var courtFees = map[string]float64{
	"asliye-hukuk": 30000,
	"sulh-hukuk":   18000,
	"is-mahkemesi": 30000,
	"aile":         30000,
	"tuketici":     15000,
	"icra-hukuk":   9000,
	"idare":        20000,
	"agir-ceza":    60000,
	"asliye-ceza":  36000,
	"sulh-ceza":    18000,
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (s *Server) calcMaas(w http.ResponseWriter, r *http.Request) {
	var in domain.MaasRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.GrossSalary <= 0 {
		fail(w, http.StatusUnprocessableEntity, "gross salary must be positive")
		return
	}
	writeJSON(w, http.StatusOK, netSalary(in.GrossSalary))
}

func netSalary(gross float64) envelope {
	sgk := gross * sgkEmployeeRate
	unemp := gross * unemploymentRate
	tax := (gross - sgk - unemp) * incomeTaxRate
	stamp := gross * stampTaxRate
	return envelope{
		"brutMaas":     round2(gross),
		"sgkIsciPayi":  round2(sgk),
		"issizlikPayi": round2(unemp),
		"gelirVergisi": round2(tax),
		"damgaVergisi": round2(stamp),
		"netMaas":      round2(gross - sgk - unemp - tax - stamp),
	}
}

func (s *Server) calcVekaletMonetary(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	if in.Amount <= 0 {
		fail(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}
	fee := math.Max(in.Amount*0.16, minimumFee)
	writeJSON(w, http.StatusOK, envelope{"amount": round2(in.Amount), "vekaletUcreti": round2(fee)})
}

func (s *Server) calcVekaletCourt(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Court string `json:"court"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	fee, ok := courtFees[in.Court]
	if !ok {
		fail(w, http.StatusUnprocessableEntity, "unknown court")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"court": in.Court, "vekaletUcreti": fee})
}

func (s *Server) calcHarcGider(w http.ResponseWriter, r *http.Request) {
	var in domain.HarcGiderRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.CaseValue <= 0 {
		fail(w, http.StatusUnprocessableEntity, "case value must be positive")
		return
	}
	fee := in.CaseValue * proportionalRate
	if in.FixedFee {
		fee = fixedCourtFee
	}
	expenses := float64(in.Witnesses)*witnessFee +
		float64(in.Experts)*expertFee +
		float64(in.Parties)*partyServiceFee
	if in.SiteVisit {
		expenses += siteVisitFee
	}
	writeJSON(w, http.StatusOK, envelope{
		"mahkemeTuru": in.CourtType,
		"harc":        round2(fee),
		"giderler":    round2(expenses),
		"toplam":      round2(fee + expenses),
	})
}

func (s *Server) calcInfaz(w http.ResponseWriter, r *http.Request) {
	var in domain.InfazRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.Sentence.Type == "" || in.Crime.Type == "" {
		fail(w, http.StatusUnprocessableEntity, "punishment and crime type are required")
		return
	}

	total := in.Sentence.Years*365 + in.Sentence.Months*30 + in.Sentence.Days
	ratio := 0.5
	switch in.Sentence.Type {
	case domain.PunishmentLife.Label():
		total, ratio = 30*365, 1
	case domain.PunishmentAggravated.Label():
		total, ratio = 36*365, 1
	}
	if in.Recurrences > 0 {
		ratio = 2.0 / 3.0
	}
	credited := 0
	for _, d := range in.Deductions {
		credited += d.TotalDays
	}
	toServe := max(int(math.Ceil(float64(total)*ratio))-credited, 0)

	out := envelope{
		"cezaType":           in.Sentence.Type,
		"toplamCezaGun":      total,
		"mahsupGun":          credited,
		"yatarGun":           toServe,
		"kosulluSaliverilme": ratio,
	}
	if !in.Crime.Date.IsZero() {
		out["tahliyeTarihi"] = domain.NewDate(in.Crime.Date.AddDate(0, 0, toServe)).String()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) calcIscilik(w http.ResponseWriter, r *http.Request) {
	var in domain.IscilikRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.GrossSalary <= 0 || !in.StartDate.Before(in.EndDate.Time) {
		fail(w, http.StatusUnprocessableEntity, "salary and a valid employment period are required")
		return
	}
	days := in.EndDate.Sub(in.StartDate.Time).Hours() / 24
	years := days / 365
	daily := in.GrossSalary / 30

	out := envelope{"calismaGunu": int(days)}
	total := 0.0
	add := func(key string, on bool, v float64) {
		if on {
			out[key] = round2(v)
			total += v
		}
	}
	add("kidemTazminati", in.Severance && years >= 1, in.GrossSalary*years)
	add("ihbarTazminati", in.NoticePay, daily*float64(noticeDays(years)))
	add("yillikIzinUcreti", in.AnnualLeave, daily*14)
	add("fazlaMesaiUcreti", in.OvertimeClaim, daily/7.5*1.5*10)
	out["toplam"] = round2(total)
	writeJSON(w, http.StatusOK, out)
}

func noticeDays(years float64) int {
	switch {
	case years < 0.5:
		return 14
	case years < 1.5:
		return 28
	case years < 3:
		return 42
	}
	return 56
}

func (s *Server) calcTrafik(w http.ResponseWriter, r *http.Request) {
	var in domain.TrafikRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.Disability <= 0 || in.Disability > 100 || in.FaultRatio < 0 || in.FaultRatio > 100 || in.Income <= 0 {
		fail(w, http.StatusUnprocessableEntity, "disability, fault ratio and income are out of range")
		return
	}
	age := in.AccidentDate.Year() - in.BirthDate.Year()
	working := max(65-age, 0)
	loss := in.Income * 12 * float64(working) * in.Disability / 100
	award := loss * (1 - in.FaultRatio/100)
	writeJSON(w, http.StatusOK, envelope{
		"kazaYasi":       age,
		"calismaYili":    working,
		"gelirKaybi":     round2(loss),
		"tazminatTutari": round2(award),
	})
}
