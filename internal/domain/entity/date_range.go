package entity

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange rango de fechas de calendario inclusivo en ambos extremos.
// Start es el inicio del primer día y End el inicio del día siguiente al último (exclusivo).
// Un extremo en cero significa sin límite.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange construye el rango a partir de fechas YYYY-MM-DD (vacías = sin límite),
// interpretadas en la zona horaria loc.
func NewDateRange(from, to string, loc *time.Location) (DateRange, error) {
	var r DateRange
	if from != "" {
		d, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("date_from inválido: %w", err)
		}
		r.Start = d
	}
	if to != "" {
		d, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("date_to inválido: %w", err)
		}
		r.End = d.AddDate(0, 0, 1)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && !r.Start.Before(r.End) {
		return DateRange{}, fmt.Errorf("date_from no puede ser posterior a date_to")
	}
	return r, nil
}

// DayRange rango que cubre un único día de calendario.
func DayRange(day time.Time) DateRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return DateRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// MonthToDate rango desde el día 1 del mes de day hasta el final de day.
func MonthToDate(day time.Time) DateRange {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	return DateRange{Start: start, End: DayRange(day).End}
}

// LastDays rango de los últimos n días de calendario hasta day inclusive.
func LastDays(day time.Time, n int) DateRange {
	r := DayRange(day)
	r.Start = r.Start.AddDate(0, 0, -n)
	return r
}

// Contains indica si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// FromLabel fecha inicial en formato YYYY-MM-DD (vacía si no hay límite).
func (r DateRange) FromLabel() string {
	if r.Start.IsZero() {
		return ""
	}
	return r.Start.Format(dateLayout)
}

// ToLabel última fecha incluida en formato YYYY-MM-DD (vacía si no hay límite).
func (r DateRange) ToLabel() string {
	if r.End.IsZero() {
		return ""
	}
	return r.End.AddDate(0, 0, -1).Format(dateLayout)
}
