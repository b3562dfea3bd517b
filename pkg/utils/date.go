package utils

import "time"

const brazilianDateTimeLayout = "02/01/2006 15:04"

// FormatDateTimeBR formata o horário no padrão "dd/mm/aaaa hh:mm" no fuso
// informado. Fuso nulo mantém o horário original.
func FormatDateTimeBR(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(brazilianDateTimeLayout)
}

// LoadLocation carrega o fuso pelo nome, caindo para UTC quando não encontrado
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
