package domain

import (
	"time"

	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

// Selector agrega os seletores de período vindos da linha de comando.
// Exatamente um seletor pode estar ativo; nenhum ativo significa a
// iteração padrão a partir do mês âncora configurado.
type Selector struct {
	StartMonth        string // --start YYYY-MM, substitui o mês âncora
	Month             string // --month YYYY-MM, um único mês
	From              string // --from YYYY-MM-DD, exige To
	To                string // --to YYYY-MM-DD, exige From
	CurrentMonthSoFar bool   // --current-month-so-far
	LastNDays         int    // --last-n-days N
	LastWeek          bool   // --last-week
	LastMonth         bool   // --last-month
}

// activeCount conta quantos seletores de período estão ativos
func (s Selector) activeCount() int {
	count := 0
	if s.StartMonth != "" {
		count++
	}
	if s.Month != "" {
		count++
	}
	if s.From != "" || s.To != "" {
		count++
	}
	if s.CurrentMonthSoFar {
		count++
	}
	if s.LastNDays > 0 {
		count++
	}
	if s.LastWeek {
		count++
	}
	if s.LastMonth {
		count++
	}
	return count
}

// Validate verifica conflitos entre seletores antes de qualquer acesso à rede
func (s Selector) Validate() error {
	if s.activeCount() > 1 {
		return NewConfigConflict("seletores de período são mutuamente exclusivos, informe apenas um")
	}
	if (s.From != "") != (s.To != "") {
		return NewConfigConflict("--from e --to devem ser informados juntos")
	}
	if s.From != "" {
		if _, err := utils.ParseDate(s.From); err != nil {
			return NewConfigConflict("--from inválido, use YYYY-MM-DD")
		}
		if _, err := utils.ParseDate(s.To); err != nil {
			return NewConfigConflict("--to inválido, use YYYY-MM-DD")
		}
	}
	if s.StartMonth != "" {
		if _, _, err := utils.ParseYearMonth(s.StartMonth); err != nil {
			return NewConfigConflict("--start inválido, use YYYY-MM")
		}
	}
	if s.Month != "" {
		if _, _, err := utils.ParseYearMonth(s.Month); err != nil {
			return NewConfigConflict("--month inválido, use YYYY-MM")
		}
	}
	return nil
}

// IsIteration indica se a seleção cai na iteração mês a mês a partir da âncora
func (s Selector) IsIteration() bool {
	return s.activeCount() == 0 || s.StartMonth != ""
}

// Resolve transforma o seletor ativo em um TimeRange único.
// A resolução é pura: os mesmos argumentos e a mesma data de referência
// produzem sempre o mesmo intervalo. Seleções de iteração (nenhum seletor
// ou --start) não produzem intervalo único e devolvem nil.
func (s Selector) Resolve(now time.Time) (*TimeRange, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	today := truncateToDay(now)

	switch {
	case s.Month != "":
		year, month, err := utils.ParseYearMonth(s.Month)
		if err != nil {
			return nil, NewConfigConflict("--month inválido, use YYYY-MM")
		}
		tr := MonthRange(year, month)
		return &tr, nil

	case s.From != "":
		from, err := utils.ParseDate(s.From)
		if err != nil {
			return nil, NewConfigConflict("--from inválido, use YYYY-MM-DD")
		}
		to, err := utils.ParseDate(s.To)
		if err != nil {
			return nil, NewConfigConflict("--to inválido, use YYYY-MM-DD")
		}
		tr, err := NewTimeRange(*from, *to, true)
		if err != nil {
			return nil, NewConfigConflict(err.Error())
		}
		return &tr, nil

	case s.CurrentMonthSoFar:
		start := utils.FirstDayOfMonth(today.Year(), today.Month())
		tr, err := NewTimeRange(start, today, false)
		if err != nil {
			return nil, err
		}
		return &tr, nil

	case s.LastNDays > 0:
		start := today.AddDate(0, 0, -(s.LastNDays - 1))
		tr, err := NewTimeRange(start, today, false)
		if err != nil {
			return nil, err
		}
		return &tr, nil

	case s.LastWeek:
		tr, err := NewTimeRange(today.AddDate(0, 0, -6), today, false)
		if err != nil {
			return nil, err
		}
		return &tr, nil

	case s.LastMonth:
		tr, err := NewTimeRange(today.AddDate(0, 0, -29), today, false)
		if err != nil {
			return nil, err
		}
		return &tr, nil
	}

	return nil, nil
}

// MissingMonths lista os meses completos entre a âncora e o mês anterior à
// data de referência que ainda não possuem relatório. O mês corrente nunca
// entra porque ainda não terminou.
func MissingMonths(anchorYear int, anchorMonth time.Month, now time.Time, existing map[ReportIdentity]bool) []TimeRange {
	var months []TimeRange

	cursor := utils.FirstDayOfMonth(anchorYear, anchorMonth)
	currentMonth := utils.FirstDayOfMonth(now.Year(), now.Month())

	for cursor.Before(currentMonth) {
		tr := MonthRange(cursor.Year(), cursor.Month())
		if !existing[tr.Identity()] {
			months = append(months, tr)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}

	return months
}
