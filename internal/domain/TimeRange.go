package domain

import (
	"fmt"
	"time"

	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

// RangeKind classifica a forma do intervalo resolvido
type RangeKind string

const (
	FullMonth    RangeKind = "full_month"    // mês calendário completo
	PartialMonth RangeKind = "partial_month" // trecho dentro de um único mês
	CustomSpan   RangeKind = "custom_span"   // intervalo livre, pode cruzar meses
)

// TimeRange representa um intervalo de datas resolvido e imutável.
// O intervalo é sempre inclusivo nas duas pontas e determina a identidade
// do relatório de forma determinística.
type TimeRange struct {
	Start time.Time
	End   time.Time
	Kind  RangeKind
}

// NewTimeRange monta um TimeRange classificando a forma do intervalo.
// explicitSpan força CustomSpan mesmo quando o intervalo coincide com um
// mês completo, que é o comportamento de --from/--to.
func NewTimeRange(start, end time.Time, explicitSpan bool) (TimeRange, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if end.Before(start) {
		return TimeRange{}, fmt.Errorf("intervalo inválido: início %s depois do fim %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	if explicitSpan {
		return TimeRange{Start: start, End: end, Kind: CustomSpan}, nil
	}

	sameMonth := start.Year() == end.Year() && start.Month() == end.Month()
	if !sameMonth {
		return TimeRange{Start: start, End: end, Kind: CustomSpan}, nil
	}

	lastDay := utils.LastDayOfMonth(start.Year(), start.Month())
	if start.Day() == 1 && end.Day() == lastDay.Day() {
		return TimeRange{Start: start, End: end, Kind: FullMonth}, nil
	}

	return TimeRange{Start: start, End: end, Kind: PartialMonth}, nil
}

// MonthRange monta o TimeRange de um mês calendário completo
func MonthRange(year int, month time.Month) TimeRange {
	return TimeRange{
		Start: utils.FirstDayOfMonth(year, month),
		End:   utils.LastDayOfMonth(year, month),
		Kind:  FullMonth,
	}
}

// Identity deriva a identidade canônica do relatório.
// Dois intervalos que denotam o mesmo período calendário produzem a mesma
// identidade; a forma explícita (--from/--to) preserva o formato longo.
func (tr TimeRange) Identity() ReportIdentity {
	switch tr.Kind {
	case FullMonth:
		return ReportIdentity(fmt.Sprintf("%04d_%02d", tr.Start.Year(), int(tr.Start.Month())))
	case PartialMonth:
		return ReportIdentity(fmt.Sprintf("%04d_%02d_%02d-%02d",
			tr.Start.Year(), int(tr.Start.Month()), tr.Start.Day(), tr.End.Day()))
	default:
		return ReportIdentity(fmt.Sprintf("%s_to_%s",
			tr.Start.Format("2006-01-02"), tr.End.Format("2006-01-02")))
	}
}

// SinceUntil devolve as datas no formato aceito pela Graph API
func (tr TimeRange) SinceUntil() (string, string) {
	return tr.Start.Format("2006-01-02"), tr.End.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ReportIdentity é a chave canônica de um relatório persistido
type ReportIdentity string

// FileName devolve o nome do arquivo CSV do relatório
func (id ReportIdentity) FileName() string {
	return fmt.Sprintf("FB_%s.csv", string(id))
}

// MonthOf devolve o ano e o mês quando a identidade é de um mês completo
func (id ReportIdentity) MonthOf() (int, time.Month, bool) {
	t, err := time.Parse("2006_01", string(id))
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

// StatusFileName devolve o nome do arquivo de relatório de status de um mês
func StatusFileName(year int, month time.Month) string {
	return fmt.Sprintf("FB_STATUS_%04d_%02d.csv", year, int(month))
}

// MonthIdentity devolve a identidade de um mês calendário completo
func MonthIdentity(year int, month time.Month) ReportIdentity {
	return ReportIdentity(fmt.Sprintf("%04d_%02d", year, int(month)))
}
