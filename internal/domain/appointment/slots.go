package appointment

import (
	"slices"
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
)

const DefaultSlotStep = 60 * time.Minute

// SlotQuery descreve um cálculo de horários livres para um dia.
type SlotQuery struct {
	Date     time.Time
	Windows  []availability.Interval
	Busy     []TimeRange
	Duration time.Duration
	Step     time.Duration
	Now      time.Time
}

// FreeRanges subtrai os intervalos ocupados da janela aberta.
func FreeRanges(open TimeRange, busy []TimeRange) []TimeRange {
	if !open.Start.Before(open.End) {
		return nil
	}

	sorted := slices.Clone(busy)
	slices.SortFunc(sorted, func(a, b TimeRange) int {
		return a.Start.Compare(b.Start)
	})

	var free []TimeRange
	cursor := open.Start
	for _, b := range sorted {
		if !b.Overlaps(open) {
			continue
		}
		if b.Start.After(cursor) {
			free = append(free, TimeRange{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(open.End) {
			return free
		}
	}

	return append(free, TimeRange{Start: cursor, End: open.End})
}

// AvailableSlots lista, em ordem crescente, os inícios t em que
// [t, t+Duration) cabe inteiro num trecho livre. Os inícios partem do
// começo de cada trecho livre e avançam de Step em Step. Horários que não
// são estritamente posteriores a Now ficam de fora.
func AvailableSlots(q SlotQuery) []time.Time {
	if q.Duration <= 0 {
		return nil
	}
	step := q.Step
	if step <= 0 {
		step = DefaultSlotStep
	}

	var slots []time.Time
	for _, w := range q.Windows {
		open := TimeRange{Start: w.Start.On(q.Date), End: w.End.On(q.Date)}

		for _, f := range FreeRanges(open, q.Busy) {
			for t := f.Start; !t.Add(q.Duration).After(f.End); t = t.Add(step) {
				if t.After(q.Now) {
					slots = append(slots, t)
				}
			}
		}
	}

	slices.SortFunc(slots, time.Time.Compare)
	return slots
}
