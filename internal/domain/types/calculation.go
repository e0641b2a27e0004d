package types

// CalculationResult is the server's answer to a calculator request. The
// client renders it and never recomputes or validates its contents.
type CalculationResult map[string]any

// PunishmentType is the kind of sentence in an enforcement calculation.
type PunishmentType string

const (
	PunishmentFixedTerm  PunishmentType = "SURELI_HAPIS"
	PunishmentLife       PunishmentType = "MUEBBET_HAPIS"
	PunishmentAggravated PunishmentType = "AGIRLASTIRILMIS_MUEBBET"
)

// Label is the wording the calculation API expects.
func (p PunishmentType) Label() string {
	switch p {
	case PunishmentFixedTerm:
		return "Süreli Hapis"
	case PunishmentLife:
		return "Müebbet Hapis"
	case PunishmentAggravated:
		return "Ağırlaştırılmış Müebbet"
	}
	return ""
}

// Convict describes the sentenced person.
type Convict struct {
	BirthDate   Date `json:"dogumTarihi"`
	HasChildren bool `json:"kadinVeCocukVarMi"`
	HasIllness  bool `json:"hastalikRaporuVarMi"`
}

// Crime is the offence and when it was committed.
type Crime struct {
	Type string `json:"type"`
	Date Date   `json:"date"`
}

// Sentence is the imposed punishment.
type Sentence struct {
	Type   string `json:"type"`
	Years  int    `json:"yil"`
	Months int    `json:"ay"`
	Days   int    `json:"gun"`
}

// Deduction is time already served (custody, detention) credited to the sentence.
type Deduction struct {
	Type      string `json:"type"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	TotalDays int    `json:"totalDays"`
}

// InfazRequest is the sentence-enforcement calculation input.
type InfazRequest struct {
	Convict     Convict     `json:"hukumlu"`
	Crime       Crime       `json:"suc"`
	Sentence    Sentence    `json:"ceza"`
	Deductions  []Deduction `json:"mahsup"`
	Recurrences int         `json:"tekerrur"`
}

// VekaletRequest selects between the monetary and non-monetary attorney fee
// schedules. Amount is used for monetary cases, Court otherwise.
type VekaletRequest struct {
	Monetary bool
	Amount   float64
	Court    string
}

// HarcGiderRequest is the court fee and expense calculation input.
type HarcGiderRequest struct {
	CaseValue    float64 `json:"davaValue"`
	CourtType    string  `json:"mahkemeTuru"`
	Witnesses    int     `json:"tanikSayisi"`
	Parties      int     `json:"tarafSayisi"`
	Experts      int     `json:"bilirkisiSayisi"`
	Attorneys    int     `json:"avukatSayisi"`
	SiteVisit    bool    `json:"kesif"`
	FixedFee     bool    `json:"maktu"`
	HasWitnesses bool    `json:"-"`
	HasExperts   bool    `json:"-"`
}

// MaasRequest converts a gross salary to net.
type MaasRequest struct {
	GrossSalary float64 `json:"brutMaas"`
}

// IscilikRequest is the labor-claim (severance, notice, leave, overtime) input.
type IscilikRequest struct {
	GrossSalary   float64 `json:"brutMaas"`
	StartDate     Date    `json:"iseBaslamaTarihi"`
	EndDate       Date    `json:"istenCikisTarihi"`
	Severance     bool    `json:"kidemTazminati"`
	NoticePay     bool    `json:"ihbarTazminati"`
	AnnualLeave   bool    `json:"yillikIzin"`
	OvertimeClaim bool    `json:"fazlaMesai"`
}

// TrafikRequest is the traffic-accident compensation input.
type TrafikRequest struct {
	BirthDate    Date    `json:"dogumTarihi"`
	AccidentDate Date    `json:"kazaTarihi"`
	Gender       string  `json:"cinsiyet"`
	Disability   float64 `json:"maluliyet"`
	Income       float64 `json:"gelir"`
	FaultRatio   float64 `json:"kusurOrani"`
}
