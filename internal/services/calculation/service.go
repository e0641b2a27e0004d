package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"ustat/internal/domain"
)

const (
	pathInfaz             = "/calculations/infaz-hesaplama"
	pathVekaletMonetary   = "/calculations/vekalet-ucreti/konusu-para-olan"
	pathVekaletNoMonetary = "/calculations/vekalet-ucreti/konusu-para-olmayan"
	pathHarcGider         = "/calculations/dosya-masrafi"
	pathMaas              = "/calculations/maas-hesaplama"
	pathIscilik           = "/calculations/iscilik-alacaklari"
	pathTrafik            = "/calculations/trafik-kazasi"

	// DefaultCourtType is sent when no court type was chosen.
	DefaultCourtType = "1"
)

// Service implements domain.CalculationService against the calculation API.
type Service struct {
	api domain.APIClient
}

func New(c domain.APIClient) *Service {
	return &Service{api: c}
}

// Infaz computes sentence enforcement dates. Sentence.Type may be given as a
// PunishmentType code; it is sent as its label.
func (s *Service) Infaz(ctx context.Context, r domain.InfazRequest) (domain.CalculationResult, error) {
	if label := domain.PunishmentType(r.Sentence.Type).Label(); label != "" {
		r.Sentence.Type = label
	}
	if strings.TrimSpace(r.Sentence.Type) == "" {
		return nil, domain.Invalid("ceza.type", "please choose a punishment type")
	}
	if strings.TrimSpace(r.Crime.Type) == "" {
		return nil, domain.Invalid("suc.type", "please choose a crime type")
	}
	if r.Sentence.Years < 0 || r.Sentence.Months < 0 || r.Sentence.Days < 0 {
		return nil, domain.Invalid("ceza", "sentence length must not be negative")
	}
	if r.Recurrences < 0 {
		return nil, domain.Invalid("tekerrur", "recurrence count must not be negative")
	}
	for i, d := range r.Deductions {
		if d.TotalDays < 0 {
			return nil, domain.Invalid(fmt.Sprintf("mahsup[%d].totalDays", i), "deducted days must not be negative")
		}
	}
	if r.Deductions == nil {
		r.Deductions = []domain.Deduction{}
	}
	return s.post(ctx, pathInfaz, r)
}

// VekaletUcreti computes the statutory attorney fee for a monetary or a
// non-monetary case.
func (s *Service) VekaletUcreti(ctx context.Context, r domain.VekaletRequest) (domain.CalculationResult, error) {
	if r.Monetary {
		if r.Amount <= 0 {
			return nil, domain.Invalid("amount", "please enter the case value")
		}
		return s.post(ctx, pathVekaletMonetary, map[string]float64{"amount": r.Amount})
	}
	court := strings.TrimSpace(r.Court)
	if court == "" {
		return nil, domain.Invalid("court", "please choose a court")
	}
	return s.post(ctx, pathVekaletNoMonetary, map[string]string{"court": court})
}

// HarcGider computes court fees and expenses. Witness and expert counts are
// only sent when their option is on.
func (s *Service) HarcGider(ctx context.Context, r domain.HarcGiderRequest) (domain.CalculationResult, error) {
	if r.CaseValue <= 0 {
		return nil, domain.Invalid("davaValue", "please enter the case value")
	}
	if r.HasWitnesses && r.Witnesses <= 0 {
		return nil, domain.Invalid("tanikSayisi", "please enter the number of witnesses")
	}
	if r.HasExperts && r.Experts <= 0 {
		return nil, domain.Invalid("bilirkisiSayisi", "please enter the number of experts")
	}
	if r.Parties < 0 || r.Attorneys < 0 {
		return nil, domain.Invalid("tarafSayisi", "counts must not be negative")
	}
	if !r.HasWitnesses {
		r.Witnesses = 0
	}
	if !r.HasExperts {
		r.Experts = 0
	}
	if strings.TrimSpace(r.CourtType) == "" {
		r.CourtType = DefaultCourtType
	}
	return s.post(ctx, pathHarcGider, r)
}

// Maas converts a gross salary to net.
func (s *Service) Maas(ctx context.Context, r domain.MaasRequest) (domain.CalculationResult, error) {
	if r.GrossSalary <= 0 {
		return nil, domain.Invalid("brutMaas", "please enter the gross salary")
	}
	return s.post(ctx, pathMaas, r)
}

// IscilikAlacaklari computes labor claims for an employment period.
func (s *Service) IscilikAlacaklari(ctx context.Context, r domain.IscilikRequest) (domain.CalculationResult, error) {
	if r.GrossSalary <= 0 {
		return nil, domain.Invalid("brutMaas", "please enter the gross salary")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return nil, domain.Invalid("iseBaslamaTarihi", "please enter both employment dates")
	}
	if !r.StartDate.Before(r.EndDate.Time) {
		return nil, domain.Invalid("iseBaslamaTarihi", "start date must be before the end date")
	}
	return s.post(ctx, pathIscilik, r)
}

// TrafikKazasi computes traffic accident compensation.
func (s *Service) TrafikKazasi(ctx context.Context, r domain.TrafikRequest) (domain.CalculationResult, error) {
	if r.Disability <= 0 || r.Disability > 100 {
		return nil, domain.Invalid("maluliyet", "disability rate must be between 0 and 100")
	}
	if r.Income <= 0 {
		return nil, domain.Invalid("gelir", "please enter the income")
	}
	if r.FaultRatio < 0 || r.FaultRatio > 100 {
		return nil, domain.Invalid("kusurOrani", "fault ratio must be between 0 and 100")
	}
	if r.BirthDate.IsZero() || r.AccidentDate.IsZero() {
		return nil, domain.Invalid("kazaTarihi", "please enter the birth and accident dates")
	}
	if r.AccidentDate.Before(r.BirthDate.Time) {
		return nil, domain.Invalid("kazaTarihi", "accident date must be after the birth date")
	}
	return s.post(ctx, pathTrafik, r)
}

// post sends in and returns the response object. A bare value is wrapped
// under "result".
func (s *Service) post(ctx context.Context, path string, in any) (domain.CalculationResult, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, path, in, &raw); err != nil {
		return nil, err
	}
	res := gjson.ParseBytes(raw)
	if !res.Exists() {
		return domain.CalculationResult{}, nil
	}
	if !res.IsObject() {
		return domain.CalculationResult{"result": res.Value()}, nil
	}
	var out domain.CalculationResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode calculation result: %w", err)
	}
	return out, nil
}

var _ domain.CalculationService = (*Service)(nil)
