package agenda

import (
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 8, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		existingStart, existingEnd time.Time
		reqStart, reqEnd           time.Time
		want                       bool
	}{
		{
			name:          "intervalo idêntico",
			existingStart: ts(9, 0), existingEnd: ts(9, 30),
			reqStart: ts(9, 0), reqEnd: ts(9, 30),
			want: true,
		},
		{
			name:          "sobreposição parcial no meio",
			existingStart: ts(9, 0), existingEnd: ts(9, 30),
			reqStart: ts(9, 15), reqEnd: ts(9, 45),
			want: true,
		},
		{
			name:          "requisição contém o existente",
			existingStart: ts(9, 0), existingEnd: ts(9, 30),
			reqStart: ts(8, 0), reqEnd: ts(11, 0),
			want: true,
		},
		{
			name:          "existente contém a requisição",
			existingStart: ts(8, 0), existingEnd: ts(11, 0),
			reqStart: ts(9, 0), reqEnd: ts(9, 30),
			want: true,
		},
		{
			name:          "encostado no fim conta como conflito",
			existingStart: ts(9, 0), existingEnd: ts(9, 30),
			reqStart: ts(9, 30), reqEnd: ts(10, 0),
			want: true,
		},
		{
			name:          "encostado no início conta como conflito",
			existingStart: ts(9, 30), existingEnd: ts(10, 0),
			reqStart: ts(9, 0), reqEnd: ts(9, 30),
			want: true,
		},
		{
			name:          "totalmente antes",
			existingStart: ts(9, 0), existingEnd: ts(9, 30),
			reqStart: ts(9, 31), reqEnd: ts(10, 0),
			want: false,
		},
		{
			name:          "totalmente depois",
			existingStart: ts(10, 0), existingEnd: ts(10, 30),
			reqStart: ts(9, 0), reqEnd: ts(9, 59),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.existingStart, tt.existingEnd, tt.reqStart, tt.reqEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndFromDuration(t *testing.T) {
	start := ts(9, 0)

	got := EndFromDuration(start, 30)
	want := ts(9, 30)
	if !got.Equal(want) {
		t.Errorf("EndFromDuration(30) = %v, want %v", got, want)
	}

	got = EndFromDuration(start, 90)
	want = ts(10, 30)
	if !got.Equal(want) {
		t.Errorf("EndFromDuration(90) = %v, want %v", got, want)
	}
}
