package schema

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnspecifiedLabel is displayed for empty categories and names.
const UnspecifiedLabel = "Non spécifié"

// MonthNames are the French month names, January first.
var MonthNames = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// WeekdayNames are the French weekday names, Sunday first.
var WeekdayNames = [7]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

// SeasonNames are the French season names.
var SeasonNames = map[Season]string{
	Winter: "Hiver",
	Spring: "Printemps",
	Summer: "Été",
	Autumn: "Automne",
}

var shiftNames = map[Period]string{
	DayPeriod:     "Jour (8h-16h)",
	EveningPeriod: "Soir (16h-00h)",
	NightPeriod:   "Nuit (00h-8h)",
}

var (
	upperFR = cases.Upper(language.French)
	lowerFR = cases.Lower(language.French)
)

// FormatCategoryName capitalizes the first letter of a category and lowercases the rest.
func FormatCategoryName(category string) string {
	if category == "" {
		return UnspecifiedLabel
	}
	_, size := utf8.DecodeRuneInString(category)
	return upperFR.String(category[:size]) + lowerFR.String(category[size:])
}

// FormatShiftName returns the display name of a shift, or the raw value when unknown.
func FormatShiftName(p Period) string {
	if name, ok := shiftNames[p]; ok {
		return name
	}
	return string(p)
}

// FormatPeriodLabel returns the display label of a correlation period key.
func FormatPeriodLabel(period string, periodType PeriodType) string {
	switch periodType {
	case DayPeriodType:
		if Period(period) == DayPeriod {
			return "Journée (8h-16h)"
		}
		return FormatShiftName(Period(period))
	case MonthPeriodType:
		if m, err := strconv.Atoi(period); err == nil && m >= 1 && m <= 12 {
			return MonthNames[m-1]
		}
	}
	return period
}
