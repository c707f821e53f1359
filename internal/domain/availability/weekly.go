package availability

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// Interval is an open window [Start, End) within a day.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Days maps a weekday to its sorted, disjoint open intervals.
type Days map[time.Weekday][]Interval

// Weekly is the recurring availability published by one professional.
type Weekly struct {
	ProfessionalID uint
	Days           Days
}

// Store persists the serialized availability, one record per professional.
type Store interface {
	Get(ctx context.Context, professionalID uint) (*models.Availability, error)
	Save(ctx context.Context, av *models.Availability) error
	Delete(ctx context.Context, professionalID uint) error
}

// New validates days and returns a normalized copy bound to the professional.
func New(professionalID uint, days Days) (*Weekly, error) {
	if professionalID == 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "professional is required")
	}

	normalized, err := Normalize(days)
	if err != nil {
		return nil, err
	}

	return &Weekly{ProfessionalID: professionalID, Days: normalized}, nil
}

// On returns a copy of the intervals for the weekday.
func (w *Weekly) On(day time.Weekday) []Interval {
	if w == nil {
		return nil
	}
	return slices.Clone(w.Days[day])
}

func (w *Weekly) IsEmpty() bool {
	if w == nil {
		return true
	}
	for _, ivs := range w.Days {
		if len(ivs) > 0 {
			return false
		}
	}
	return true
}

// Normalize sorts every weekday's intervals, drops empty weekdays, merges
// touching intervals (09:00-12:00 + 12:00-14:00 = 09:00-14:00) and rejects
// malformed or overlapping intervals. The input is not modified.
func Normalize(days Days) (Days, error) {
	out := make(Days, len(days))

	for day, ivs := range days {
		if day < time.Sunday || day > time.Saturday {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "invalid weekday %d", int(day))
		}
		if len(ivs) == 0 {
			continue
		}

		sorted := slices.Clone(ivs)
		slices.SortFunc(sorted, func(a, b Interval) int {
			if a.Start != b.Start {
				return int(a.Start) - int(b.Start)
			}
			return int(a.End) - int(b.End)
		})

		merged := make([]Interval, 0, len(sorted))
		for i, iv := range sorted {
			if !iv.Start.Valid() || !iv.End.Valid() {
				return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability,
					"%s: interval %d-%d out of range", weekdayKey(day), int(iv.Start), int(iv.End))
			}
			if iv.Start >= iv.End {
				return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability,
					"%s: interval %s must start before it ends", weekdayKey(day), iv)
			}
			if i > 0 && sorted[i-1].End > iv.Start {
				return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability,
					"%s: interval %s overlaps %s", weekdayKey(day), sorted[i-1], iv)
			}

			if n := len(merged); n > 0 && merged[n-1].End == iv.Start {
				merged[n-1].End = iv.End
				continue
			}
			merged = append(merged, iv)
		}

		out[day] = merged
	}

	return out, nil
}

// Equal compares two normalized schedules.
func (d Days) Equal(other Days) bool {
	if len(d) != len(other) {
		return false
	}
	for day, ivs := range d {
		if !slices.Equal(ivs, other[day]) {
			return false
		}
	}
	return true
}

func (d Days) String() string {
	var b strings.Builder
	for _, day := range weekOrder {
		ivs := d[day]
		if len(ivs) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(weekdayKey(day))
		b.WriteString(" ")
		for i, iv := range ivs {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(iv.String())
		}
	}
	return b.String()
}

var weekOrder = [...]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

func weekdayKey(day time.Weekday) string {
	if day < time.Sunday || day > time.Saturday {
		return fmt.Sprintf("weekday(%d)", int(day))
	}
	return strings.ToLower(day.String())
}
