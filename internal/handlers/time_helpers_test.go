package handlers

import (
	"testing"
	"time"

	"github.com/agendafacil/agenda-saas/internal/models"
)

func TestParseDateTimeInTenant(t *testing.T) {
	tenant := &models.Tenant{Timezone: "America/Sao_Paulo"}

	got, err := parseDateTimeInTenant(tenant, "2024-01-08 09:00:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	want := time.Date(2024, 1, 8, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// com offset explícito, respeita o offset
	got, err = parseDateTimeInTenant(tenant, "2024-01-08T09:00:00Z")
	if err != nil {
		t.Fatalf("parse RFC3339: %v", err)
	}
	if !got.Equal(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("offset explícito ignorado: %v", got)
	}

	if _, err := parseDateTimeInTenant(tenant, "08/01/2024"); err == nil {
		t.Error("formato desconhecido deveria falhar")
	}
}

func TestParseUintParam(t *testing.T) {
	tests := []struct {
		in     string
		want   uint
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
		{"-1", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseUintParam(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseUintParam(%q) = (%d, %v), want (%d, %v)",
				tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Aula Experimental", "aula-experimental"},
		{"  Corte & Barba  ", "corte--barba"},
		{"Pilates 2x", "pilates-2x"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.006, 10.01},
		{10.004, 10.0},
		{150.0 * 10 / 100, 15.0},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
