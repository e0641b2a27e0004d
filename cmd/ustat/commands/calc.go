package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"ustat/internal/domain"
	"ustat/internal/services/calculation"
)

func (c *cli) calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Legal calculators",
		Long: "Legal calculators. Amounts may be typed the Turkish way (1.234,56) " +
			"and dates as YYYY-MM-DD or DD.MM.YYYY.",
	}
	cmd.AddCommand(
		c.infazCmd(),
		c.vekaletCmd(),
		c.harcCmd(),
		c.maasCmd(),
		c.iscilikCmd(),
		c.trafikCmd(),
	)
	return cmd
}

// runCalc executes fn and prints its result.
func (c *cli) runCalc(cmd *cobra.Command, fn func(ctx context.Context) (domain.CalculationResult, error)) error {
	res, err := fn(c.ctx(cmd))
	if err != nil {
		return err
	}
	return c.out.print(res, func(w io.Writer) { printResult(w, res) })
}

func amount(field, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := calculation.ParseTRY(s)
	if err != nil {
		return 0, domain.Invalid(field, "amount is not a number")
	}
	return v, nil
}

func date(field, s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, domain.Invalid(field, "date must be YYYY-MM-DD or DD.MM.YYYY")
	}
	return d, nil
}

func (c *cli) infazCmd() *cobra.Command {
	var (
		birth, crimeDate, crimeType, punishment string
		r                                       domain.InfazRequest
		deductionDays                           int
	)
	cmd := &cobra.Command{
		Use:   "infaz",
		Short: "Sentence enforcement (conditional release) calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if r.Convict.BirthDate, err = date("dogumTarihi", birth); err != nil {
				return err
			}
			if r.Crime.Date, err = date("suc.date", crimeDate); err != nil {
				return err
			}
			r.Crime.Type = crimeType
			r.Sentence.Type = punishment
			if deductionDays > 0 {
				r.Deductions = []domain.Deduction{{
					Type:      "Gözaltı",
					StartDate: r.Crime.Date,
					EndDate:   r.Crime.Date,
					TotalDays: deductionDays,
				}}
			}
			return c.runCalc(cmd, func(ctx context.Context) (domain.CalculationResult, error) {
				return c.app.Calculations.Infaz(ctx, r)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&birth, "birth", "", "convict's date of birth")
	f.BoolVar(&r.Convict.HasChildren, "children", false, "woman with a young child")
	f.BoolVar(&r.Convict.HasIllness, "illness", false, "has a medical report")
	f.StringVar(&crimeType, "crime-type", "", "crime type")
	f.StringVar(&crimeDate, "crime-date", "", "date of the crime")
	f.StringVar(&punishment, "punishment", string(domain.PunishmentFixedTerm), "SURELI_HAPIS, MUEBBET_HAPIS or AGIRLASTIRILMIS_MUEBBET")
	f.IntVar(&r.Sentence.Years, "years", 0, "sentence years")
	f.IntVar(&r.Sentence.Months, "months", 0, "sentence months")
	f.IntVar(&r.Sentence.Days, "days", 0, "sentence days")
	f.IntVar(&deductionDays, "deduction-days", 0, "days in custody to credit")
	f.IntVar(&r.Recurrences, "recurrences", 0, "number of repeat offences")
	return cmd
}

func (c *cli) vekaletCmd() *cobra.Command {
	var (
		amt string
		r   domain.VekaletRequest
	)
	cmd := &cobra.Command{
		Use:   "vekalet",
		Short: "Statutory attorney fee (--amount for monetary cases, --court otherwise)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if amt != "" {
				v, err := amount("amount", amt)
				if err != nil {
					return err
				}
				r.Monetary, r.Amount = true, v
			}
			return c.runCalc(cmd, func(ctx context.Context) (domain.CalculationResult, error) {
				return c.app.Calculations.VekaletUcreti(ctx, r)
			})
		},
	}
	cmd.Flags().StringVar(&amt, "amount", "", "case value for monetary cases")
	cmd.Flags().StringVar(&r.Court, "court", "", "court for non-monetary cases")
	return cmd
}

func (c *cli) harcCmd() *cobra.Command {
	var (
		value string
		r     domain.HarcGiderRequest
	)
	cmd := &cobra.Command{
		Use:   "harc",
		Short: "Court fees and expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := amount("davaValue", value)
			if err != nil {
				return err
			}
			r.CaseValue = v
			r.HasWitnesses = cmd.Flags().Changed("witnesses")
			r.HasExperts = cmd.Flags().Changed("experts")
			return c.runCalc(cmd, func(ctx context.Context) (domain.CalculationResult, error) {
				return c.app.Calculations.HarcGider(ctx, r)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&value, "value", "", "case value")
	f.StringVar(&r.CourtType, "court-type", calculation.DefaultCourtType, "court type code")
	f.IntVar(&r.Witnesses, "witnesses", 0, "number of witnesses")
	f.IntVar(&r.Experts, "experts", 0, "number of experts")
	f.IntVar(&r.Parties, "parties", 2, "number of parties")
	f.IntVar(&r.Attorneys, "attorneys", 1, "number of attorneys")
	f.BoolVar(&r.SiteVisit, "site-visit", false, "include an on-site inspection")
	f.BoolVar(&r.FixedFee, "fixed", false, "fixed (maktu) fee instead of proportional")
	return cmd
}

func (c *cli) maasCmd() *cobra.Command {
	var gross string
	cmd := &cobra.Command{
		Use:   "maas",
		Short: "Gross to net salary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := amount("brutMaas", gross)
			if err != nil {
				return err
			}
			return c.runCalc(cmd, func(ctx context.Context) (domain.CalculationResult, error) {
				return c.app.Calculations.Maas(ctx, domain.MaasRequest{GrossSalary: v})
			})
		},
	}
	cmd.Flags().StringVar(&gross, "gross", "", "gross monthly salary")
	return cmd
}

func (c *cli) iscilikCmd() *cobra.Command {
	var (
		gross, start, end string
		r                 domain.IscilikRequest
	)
	cmd := &cobra.Command{
		Use:   "iscilik",
		Short: "Labor claims: severance, notice, leave and overtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if r.GrossSalary, err = amount("brutMaas", gross); err != nil {
				return err
			}
			if r.StartDate, err = date("iseBaslamaTarihi", start); err != nil {
				return err
			}
			if r.EndDate, err = date("istenCikisTarihi", end); err != nil {
				return err
			}
			return c.runCalc(cmd, func(ctx context.Context) (domain.CalculationResult, error) {
				return c.app.Calculations.IscilikAlacaklari(ctx, r)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&gross, "gross", "", "gross monthly salary")
	f.StringVar(&start, "start", "", "employment start date")
	f.StringVar(&end, "end", "", "employment end date")
	f.BoolVar(&r.Severance, "severance", true, "claim severance pay")
	f.BoolVar(&r.NoticePay, "notice", true, "claim notice pay")
	f.BoolVar(&r.AnnualLeave, "leave", false, "claim unused annual leave")
	f.BoolVar(&r.OvertimeClaim, "overtime", false, "claim overtime")
	return cmd
}

func (c *cli) trafikCmd() *cobra.Command {
	var (
		birth, accident, income string
		r                       domain.TrafikRequest
	)
	cmd := &cobra.Command{
		Use:   "trafik",
		Short: "Traffic accident compensation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if r.BirthDate, err = date("dogumTarihi", birth); err != nil {
				return err
			}
			if r.AccidentDate, err = date("kazaTarihi", accident); err != nil {
				return err
			}
			if r.Income, err = amount("gelir", income); err != nil {
				return err
			}
			return c.runCalc(cmd, func(ctx context.Context) (domain.CalculationResult, error) {
				return c.app.Calculations.TrafikKazasi(ctx, r)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&birth, "birth", "", "injured person's date of birth")
	f.StringVar(&accident, "accident", "", "accident date")
	f.StringVar(&r.Gender, "gender", "E", "E (male) or K (female)")
	f.Float64Var(&r.Disability, "disability", 0, "disability rate, percent")
	f.StringVar(&income, "income", "", "monthly income")
	f.Float64Var(&r.FaultRatio, "fault", 0, "injured person's fault ratio, percent")
	return cmd
}
