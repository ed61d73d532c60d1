package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCategoryName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", UnspecifiedLabel},
		{"VOL DE VÉHICULE", "Vol de véhicule"},
		{"méfait", "Méfait"},
		{"Introduction", "Introduction"},
		{"élan", "Élan"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCategoryName(tt.in))
		})
	}
}

func TestFormatPeriodLabel(t *testing.T) {
	tests := []struct {
		period     string
		periodType PeriodType
		want       string
	}{
		{"jour", DayPeriodType, "Journée (8h-16h)"},
		{"soir", DayPeriodType, "Soir (16h-00h)"},
		{"nuit", DayPeriodType, "Nuit (00h-8h)"},
		{"01", MonthPeriodType, "Janvier"},
		{"12", MonthPeriodType, "Décembre"},
		{"13", MonthPeriodType, "13"},
		{"Lundi", WeekdayPeriodType, "Lundi"},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPeriodLabel(tt.period, tt.periodType))
		})
	}
}

func TestFormatShiftName(t *testing.T) {
	assert.Equal(t, "Jour (8h-16h)", FormatShiftName(DayPeriod))
	assert.Equal(t, "autre", FormatShiftName(Period("autre")))
}
