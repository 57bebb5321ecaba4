package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTimeRange_Identity(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		end          time.Time
		explicitSpan bool
		wantKind     RangeKind
		wantIdentity ReportIdentity
	}{
		{
			name:         "Mês completo gera identidade YYYY_MM",
			start:        date(2025, time.May, 1),
			end:          date(2025, time.May, 31),
			wantKind:     FullMonth,
			wantIdentity: "2025_05",
		},
		{
			name:         "Trecho do mês gera identidade YYYY_MM_DD-DD",
			start:        date(2025, time.May, 1),
			end:          date(2025, time.May, 19),
			wantKind:     PartialMonth,
			wantIdentity: "2025_05_01-19",
		},
		{
			name:         "Intervalo entre meses gera identidade longa",
			start:        date(2025, time.April, 25),
			end:          date(2025, time.May, 19),
			wantKind:     CustomSpan,
			wantIdentity: "2025-04-25_to_2025-05-19",
		},
		{
			name:         "Intervalo explícito igual a um mês completo permanece custom",
			start:        date(2025, time.May, 1),
			end:          date(2025, time.May, 31),
			explicitSpan: true,
			wantKind:     CustomSpan,
			wantIdentity: "2025-05-01_to_2025-05-31",
		},
		{
			name:         "Fevereiro bissexto reconhecido como mês completo",
			start:        date(2024, time.February, 1),
			end:          date(2024, time.February, 29),
			wantKind:     FullMonth,
			wantIdentity: "2024_02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTimeRange(tt.start, tt.end, tt.explicitSpan)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKind, tr.Kind)
			assert.Equal(t, tt.wantIdentity, tr.Identity())
		})
	}
}

func TestNewTimeRange_IntervaloInvertido(t *testing.T) {
	_, err := NewTimeRange(date(2025, time.May, 10), date(2025, time.May, 1), false)
	assert.Error(t, err)
}

func TestReportIdentity_FileName(t *testing.T) {
	assert.Equal(t, "FB_2025_05.csv", MonthIdentity(2025, time.May).FileName())
	assert.Equal(t, "FB_STATUS_2025_05.csv", StatusFileName(2025, time.May))
}

func TestSelector_Resolve(t *testing.T) {
	// Data de referência fixa para manter a resolução determinística
	now := date(2025, time.June, 18)

	tests := []struct {
		name      string
		selector  Selector
		wantStart time.Time
		wantEnd   time.Time
		wantKind  RangeKind
	}{
		{
			name:      "Mês específico",
			selector:  Selector{Month: "2025-05"},
			wantStart: date(2025, time.May, 1),
			wantEnd:   date(2025, time.May, 31),
			wantKind:  FullMonth,
		},
		{
			name:      "Intervalo explícito sempre custom",
			selector:  Selector{From: "2025-05-01", To: "2025-05-31"},
			wantStart: date(2025, time.May, 1),
			wantEnd:   date(2025, time.May, 31),
			wantKind:  CustomSpan,
		},
		{
			name:      "Mês corrente até hoje",
			selector:  Selector{CurrentMonthSoFar: true},
			wantStart: date(2025, time.June, 1),
			wantEnd:   date(2025, time.June, 18),
			wantKind:  PartialMonth,
		},
		{
			name:      "Últimos N dias inclui o dia de hoje",
			selector:  Selector{LastNDays: 7},
			wantStart: date(2025, time.June, 12),
			wantEnd:   date(2025, time.June, 18),
			wantKind:  PartialMonth,
		},
		{
			name:      "Última semana são sete dias corridos",
			selector:  Selector{LastWeek: true},
			wantStart: date(2025, time.June, 12),
			wantEnd:   date(2025, time.June, 18),
			wantKind:  PartialMonth,
		},
		{
			name:      "Último mês são trinta dias corridos",
			selector:  Selector{LastMonth: true},
			wantStart: date(2025, time.May, 20),
			wantEnd:   date(2025, time.June, 18),
			wantKind:  CustomSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := tt.selector.Resolve(now)
			assert.NoError(t, err)
			if assert.NotNil(t, tr) {
				assert.Equal(t, tt.wantStart, tr.Start)
				assert.Equal(t, tt.wantEnd, tr.End)
				assert.Equal(t, tt.wantKind, tr.Kind)
			}

			// Resolução é pura: repetir com a mesma data produz o mesmo intervalo
			again, err := tt.selector.Resolve(now)
			assert.NoError(t, err)
			assert.Equal(t, tr, again)
		})
	}
}

func TestSelector_Resolve_SemSeletorCaiNaIteracao(t *testing.T) {
	tr, err := Selector{}.Resolve(date(2025, time.June, 18))
	assert.NoError(t, err)
	assert.Nil(t, tr)
	assert.True(t, Selector{}.IsIteration())
	assert.True(t, Selector{StartMonth: "2024-06"}.IsIteration())
	assert.False(t, Selector{Month: "2024-06"}.IsIteration())
}

func TestSelector_Validate_Conflitos(t *testing.T) {
	tests := []struct {
		name     string
		selector Selector
	}{
		{
			name:     "Mês e última semana ao mesmo tempo",
			selector: Selector{Month: "2025-05", LastWeek: true},
		},
		{
			name:     "From sem To",
			selector: Selector{From: "2025-05-01"},
		},
		{
			name:     "To sem From",
			selector: Selector{To: "2025-05-31"},
		},
		{
			name:     "Intervalo e últimos N dias",
			selector: Selector{From: "2025-05-01", To: "2025-05-31", LastNDays: 5},
		},
		{
			name:     "Start e Month simultâneos",
			selector: Selector{StartMonth: "2024-01", Month: "2025-05"},
		},
		{
			name:     "Formato de mês inválido",
			selector: Selector{Month: "maio/2025"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.selector.Validate()
			assert.Error(t, err)
			assert.True(t, IsConfigConflict(err))
		})
	}
}

func TestMissingMonths(t *testing.T) {
	now := date(2025, time.June, 18)

	t.Run("Todos os meses até o anterior ao corrente", func(t *testing.T) {
		months := MissingMonths(2025, time.March, now, nil)
		identities := make([]ReportIdentity, 0, len(months))
		for _, m := range months {
			identities = append(identities, m.Identity())
		}
		assert.Equal(t, []ReportIdentity{"2025_03", "2025_04", "2025_05"}, identities)
	})

	t.Run("Meses com relatório existente são pulados", func(t *testing.T) {
		existing := map[ReportIdentity]bool{"2025_04": true}
		months := MissingMonths(2025, time.March, now, existing)
		identities := make([]ReportIdentity, 0, len(months))
		for _, m := range months {
			identities = append(identities, m.Identity())
		}
		assert.Equal(t, []ReportIdentity{"2025_03", "2025_05"}, identities)
	})

	t.Run("Âncora no mês corrente não produz nada", func(t *testing.T) {
		months := MissingMonths(2025, time.June, now, nil)
		assert.Empty(t, months)
	})

	t.Run("Virada de ano é percorrida", func(t *testing.T) {
		months := MissingMonths(2024, time.November, date(2025, time.February, 2), nil)
		identities := make([]ReportIdentity, 0, len(months))
		for _, m := range months {
			identities = append(identities, m.Identity())
		}
		assert.Equal(t, []ReportIdentity{"2024_11", "2024_12", "2025_01"}, identities)
	})
}
