package joinwindow

import "time"

// ===============================
// Join Window
// ===============================

// IsJoinable decide se "now" cai dentro da janela de entrada da consulta:
// de (início do slot - windowMinutes) até o fim do slot.
//
// A data e os horários chegam como strings (2006-01-02 / 15:04) e são
// combinados no timezone da clínica; o dia do calendário nunca é
// deslocado para UTC.
//
// Política deliberada: se qualquer data/hora não parsear, abre a porta
// (retorna true). Preferimos deixar o usuário tentar entrar a bloquear
// silenciosamente por dado malformado.
func IsJoinable(
	scheduledDate string,
	slotStart string,
	slotEnd string,
	windowMinutes int,
	now time.Time,
	loc *time.Location,
) bool {

	if loc == nil {
		loc = time.Local
	}

	startAt, err := combine(scheduledDate, slotStart, loc)
	if err != nil {
		return true
	}

	endAt, err := combine(scheduledDate, slotEnd, loc)
	if err != nil {
		return true
	}

	if windowMinutes < 0 {
		windowMinutes = 0
	}

	opensAt := startAt.Add(-time.Duration(windowMinutes) * time.Minute)

	return !now.Before(opensAt) && !now.After(endAt)
}

func combine(dateStr, hm string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}
