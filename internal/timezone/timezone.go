package timezone

import "time"

// Fuso padrão dos técnicos sem timezone configurado.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o fuso do técnico, caindo no padrão quando o valor
// gravado é vazio ou inválido.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NowIn é o relógio oficial dos cálculos de agenda: sempre no fuso do
// técnico dono do horário.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
