package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// firstRNG always picks index i for the i-th call, leaving order untouched.
type firstRNG struct{ n int }

func (r *firstRNG) Intn(n int) int {
	v := r.n % n
	r.n++
	return v
}

func TestPhaseFor(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		strikes   int
		want      Phase
	}{
		{"playing", 3, 0, PhasePlaying},
		{"playing below limit", 1, StrikeLimit - 1, PhasePlaying},
		{"won", 0, 0, PhaseWon},
		{"won with strikes", 0, StrikeLimit - 1, PhaseWon},
		{"lost", 4, StrikeLimit, PhaseLost},
		{"lost beyond limit", 4, StrikeLimit + 2, PhaseLost},
		{"tie goes to lost", 0, StrikeLimit, PhaseLost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phaseFor(tt.remaining, tt.strikes))
		})
	}
}

func TestMaterialize_Defaults(t *testing.T) {
	vocab := []string{"a", "b", "c"}
	s := materialize(persisted{}, vocab, &firstRNG{})

	assert.Equal(t, state{Words: []string{"a", "b", "c"}, Passes: DefaultPasses}, s)
}

func TestMaterialize_KeepsLoadedFields(t *testing.T) {
	words := []string{"dream"}
	points, passes := 4, 0
	s := materialize(persisted{Words: &words, Points: &points, Passes: &passes}, []string{"x"}, &firstRNG{})

	assert.Equal(t, state{Words: []string{"dream"}, Points: 4, Strikes: 0, Passes: 0}, s)
}

func TestValidQueue(t *testing.T) {
	vocab := []string{"dream", "relief", "opposite"}
	tests := []struct {
		name  string
		words []string
		want  bool
	}{
		{"suffix of shuffle", []string{"relief", "dream"}, true},
		{"empty", []string{}, true},
		{"nil", nil, false},
		{"uppercase", []string{"Dream"}, false},
		{"not in vocabulary", []string{"zebra"}, false},
		{"repeated", []string{"dream", "dream"}, false},
		{"longer than vocabulary", []string{"dream", "relief", "opposite", "dream"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validQueue(tt.words, vocab))
		})
	}
}
