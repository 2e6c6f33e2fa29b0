// Package timezone resolve o fuso da clínica. Todo cálculo de agenda
// (janela de entrada, virada de dia) acontece no fuso do tenant, nunca
// em UTC.
package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location carrega o fuso pedido; inválido ou vazio cai no padrão.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn é o relógio das clínicas: agora no fuso configurado do tenant.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
