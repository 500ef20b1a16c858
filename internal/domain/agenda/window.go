package agenda

import (
	"time"

	"github.com/agendafacil/agenda-saas/internal/httperr"
)

const timeOfDayLayout = "15:04:05"

// TimeOfDay extrai o horário de parede no formato fixo HH:MM:SS.
// A comparação lexical só é correta porque o formato é fixo.
func TimeOfDay(t time.Time) string {
	return t.Format(timeOfDayLayout)
}

// WithinDayWindow compara o horário de parede de [start, end] contra a
// janela HH:MM:SS do dia
func WithinDayWindow(start, end time.Time, windowStart, windowEnd string) bool {
	startTime := TimeOfDay(start)
	endTime := TimeOfDay(end)
	return startTime >= windowStart && endTime <= windowEnd
}

// ValidateWindow valida uma janela semanal vinda da borda HTTP
func ValidateWindow(weekday int, startTime, endTime string) error {
	if weekday < 0 || weekday > 6 {
		return httperr.ErrBusiness("invalid_weekday")
	}
	if !validTimeOfDay(startTime) || !validTimeOfDay(endTime) {
		return httperr.ErrBusiness("invalid_time_format")
	}
	if endTime <= startTime {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

// ValidateInterval valida um intervalo fechado (bloqueios)
func ValidateInterval(startAt, endAt time.Time) error {
	if !endAt.After(startAt) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

func validTimeOfDay(s string) bool {
	if len(s) != 8 {
		return false
	}
	_, err := time.Parse(timeOfDayLayout, s)
	return err == nil
}
