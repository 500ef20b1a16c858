package agenda

import (
	"testing"
	"time"

	"github.com/agendafacil/agenda-saas/internal/httperr"
)

func TestWithinDayWindow(t *testing.T) {
	tests := []struct {
		name                   string
		start, end             time.Time
		windowStart, windowEnd string
		want                   bool
	}{
		{
			name:  "dentro da janela",
			start: ts(9, 0), end: ts(9, 30),
			windowStart: "08:00:00", windowEnd: "18:00:00",
			want: true,
		},
		{
			name:  "exatamente nas bordas",
			start: ts(8, 0), end: ts(18, 0),
			windowStart: "08:00:00", windowEnd: "18:00:00",
			want: true,
		},
		{
			name:  "começa antes da janela",
			start: ts(7, 59), end: ts(9, 0),
			windowStart: "08:00:00", windowEnd: "18:00:00",
			want: false,
		},
		{
			name:  "termina depois da janela",
			start: ts(17, 0), end: ts(18, 1),
			windowStart: "08:00:00", windowEnd: "18:00:00",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinDayWindow(tt.start, tt.end, tt.windowStart, tt.windowEnd)
			if got != tt.want {
				t.Errorf("WithinDayWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow(1, "08:00:00", "18:00:00"); err != nil {
		t.Fatalf("janela válida rejeitada: %v", err)
	}

	tests := []struct {
		name     string
		weekday  int
		start    string
		end      string
		wantCode string
	}{
		{"weekday negativo", -1, "08:00:00", "18:00:00", "invalid_weekday"},
		{"weekday acima de 6", 7, "08:00:00", "18:00:00", "invalid_weekday"},
		{"formato curto", 1, "8:00", "18:00:00", "invalid_time_format"},
		{"hora impossível", 1, "25:00:00", "26:00:00", "invalid_time_format"},
		{"fim igual ao início", 1, "08:00:00", "08:00:00", "invalid_time_range"},
		{"fim antes do início", 1, "18:00:00", "08:00:00", "invalid_time_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.weekday, tt.start, tt.end)
			if err == nil {
				t.Fatal("esperava erro, veio nil")
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("código = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	if err := ValidateInterval(ts(9, 0), ts(10, 0)); err != nil {
		t.Fatalf("intervalo válido rejeitado: %v", err)
	}
	if err := ValidateInterval(ts(10, 0), ts(9, 0)); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Errorf("intervalo invertido: err = %v, want invalid_time_range", err)
	}
	if err := ValidateInterval(ts(9, 0), ts(9, 0)); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Errorf("intervalo vazio: err = %v, want invalid_time_range", err)
	}
}

func TestTimeOfDay(t *testing.T) {
	got := TimeOfDay(time.Date(2024, 1, 8, 9, 5, 3, 0, time.UTC))
	if got != "09:05:03" {
		t.Errorf("TimeOfDay() = %q, want %q", got, "09:05:03")
	}
}
