// Package catalog holds the fixed table of service types and their durations.
package catalog

import (
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

// ServiceType é o identificador estável usado na fronteira da API.
type ServiceType string

const (
	SmallTattoo  ServiceType = "TATUAGEM_PEQUENA"
	MediumTattoo ServiceType = "TATUAGEM_MEDIA"
	LargeTattoo  ServiceType = "TATUAGEM_GRANDE"
	Session      ServiceType = "SESSAO"
)

var ordered = [...]ServiceType{SmallTattoo, MediumTattoo, LargeTattoo, Session}

// All returns every service type in catalog order.
func All() []ServiceType {
	out := make([]ServiceType, len(ordered))
	copy(out, ordered[:])
	return out
}

// Parse resolves a boundary identifier. Unknown identifiers are rejected,
// never coerced.
func Parse(raw string) (ServiceType, error) {
	st := ServiceType(raw)
	if !st.Valid() {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidServiceType, "unknown service type %q", raw)
	}
	return st, nil
}

// DurationOf returns the duration in hours.
func DurationOf(st ServiceType) (int, error) {
	h, ok := st.hours()
	if !ok {
		return 0, httperr.ErrBusinessf(httperr.CodeInvalidServiceType, "unknown service type %q", string(st))
	}
	return h, nil
}

func (st ServiceType) Valid() bool {
	_, ok := st.hours()
	return ok
}

// Duration returns zero for unknown types.
func (st ServiceType) Duration() time.Duration {
	h, _ := st.hours()
	return time.Duration(h) * time.Hour
}

func (st ServiceType) hours() (int, bool) {
	switch st {
	case SmallTattoo:
		return 2, true
	case MediumTattoo:
		return 4, true
	case LargeTattoo:
		return 6, true
	case Session:
		return 8, true
	}
	return 0, false
}

func (st ServiceType) Label() string {
	switch st {
	case SmallTattoo:
		return "Tatuagem pequena"
	case MediumTattoo:
		return "Tatuagem média"
	case LargeTattoo:
		return "Tatuagem grande"
	case Session:
		return "Sessão"
	}
	return ""
}

func (st ServiceType) String() string {
	return string(st)
}
