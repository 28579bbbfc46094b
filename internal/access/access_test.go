package access

import "testing"

func TestStaticGate(t *testing.T) {
	tests := []struct {
		name     string
		gate     StaticGate
		playlist string
		want     bool
	}{
		{"subscriber plays anything", StaticGate{Subscriber: true}, "pl-rain", true},
		{"free playlist", StaticGate{Free: []string{"pl-rain"}}, "pl-rain", true},
		{"locked playlist", StaticGate{Free: []string{"pl-rain"}}, "pl-yoga", false},
		{"no subscription", StaticGate{}, "pl-rain", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gate.Entitled(tt.playlist); got != tt.want {
				t.Errorf("Entitled(%q) = %v, want %v", tt.playlist, got, tt.want)
			}
		})
	}
}
