package agenda

import "time"

// Overlaps diz se um agendamento existente conflita com a janela pedida.
// Bordas inclusivas: agendamentos encostados (fim == início) contam como
// conflito — mesmo critério da query de conflitos do repositório.
func Overlaps(existingStart, existingEnd, reqStart, reqEnd time.Time) bool {
	if betweenInclusive(existingStart, reqStart, reqEnd) {
		return true
	}
	if betweenInclusive(existingEnd, reqStart, reqEnd) {
		return true
	}
	// existente cobre a janela inteira
	return !existingStart.After(reqStart) && !existingEnd.Before(reqEnd)
}

func betweenInclusive(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// EndFromDuration deriva o fim do agendamento; o cliente nunca informa o fim
func EndFromDuration(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
