package availability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

// MaxBlobSize is the storage ceiling, in characters, of a serialized schedule.
const MaxBlobSize = 5000

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,

	"domingo":       time.Sunday,
	"segunda":       time.Monday,
	"segunda-feira": time.Monday,
	"terca":         time.Tuesday,
	"terça":         time.Tuesday,
	"terca-feira":   time.Tuesday,
	"terça-feira":   time.Tuesday,
	"quarta":        time.Wednesday,
	"quarta-feira":  time.Wednesday,
	"quinta":        time.Thursday,
	"quinta-feira":  time.Thursday,
	"sexta":         time.Friday,
	"sexta-feira":   time.Friday,
	"sabado":        time.Saturday,
	"sábado":        time.Saturday,
}

// ParseWeekday accepts English and pt-BR weekday names, case-insensitive.
func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return day, ok
}

// DaysFromNames converts a name-keyed map into Days. Aliases of the same
// weekday are merged before validation.
func DaysFromNames(named map[string][]Interval) (Days, error) {
	days := make(Days, len(named))
	for name, ivs := range named {
		day, ok := ParseWeekday(name)
		if !ok {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "unknown weekday %q", name)
		}
		days[day] = append(days[day], ivs...)
	}
	return Normalize(days)
}

// Names converts Days into the canonical name-keyed form.
func (d Days) Names() map[string][]Interval {
	out := make(map[string][]Interval, len(d))
	for day, ivs := range d {
		if len(ivs) == 0 {
			continue
		}
		out[weekdayKey(day)] = ivs
	}
	return out
}

// Parse decodes a stored blob. Empty, whitespace-only and JSON null all
// mean no availability on any day.
func Parse(blob string) (Days, error) {
	trimmed := strings.TrimSpace(blob)
	if trimmed == "" || trimmed == "null" {
		return Days{}, nil
	}

	var named map[string][]Interval
	if err := json.Unmarshal([]byte(trimmed), &named); err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "malformed schedule: %v", err)
	}

	return DaysFromNames(named)
}

// Serialize encodes days with canonical English weekday keys in Monday to
// Sunday order, omitting empty days. The output is not required to match the
// blob it was parsed from, only to parse back to the same schedule.
func Serialize(days Days) (string, error) {
	normalized, err := Normalize(days)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteByte('{')
	for _, day := range weekOrder {
		ivs := normalized[day]
		if len(ivs) == 0 {
			continue
		}
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		encoded, err := json.Marshal(ivs)
		if err != nil {
			return "", httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "encode schedule: %v", err)
		}
		fmt.Fprintf(&b, "%q:", weekdayKey(day))
		b.Write(encoded)
	}
	b.WriteByte('}')

	if n := utf8.RuneCount(b.Bytes()); n > MaxBlobSize {
		return "", httperr.ErrBusinessf(httperr.CodeAvailabilityTooLarge,
			"serialized schedule has %d characters, limit is %d", n, MaxBlobSize)
	}
	return b.String(), nil
}
