package killswitch

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestKnockSequenceWithinWindowReveals(t *testing.T) {
    now := time.Now()
    state := KnockState{}

    for i := 0; i < DefaultKnockThreshold; i++ {
        state = state.Advance(now, DefaultKnockWindow)
        now = now.Add(500 * time.Millisecond)
    }

    assert.True(t, state.Revealed(DefaultKnockThreshold))
}

func TestKnockGapResetsCounter(t *testing.T) {
    now := time.Now()
    state := KnockState{}

    for i := 0; i < 5; i++ {
        state = state.Advance(now, DefaultKnockWindow)
        now = now.Add(time.Second)
    }
    assert.Equal(t, 5, state.Count)

    // Intervalo maior que a janela volta o contador para 1
    now = now.Add(3 * time.Second)
    state = state.Advance(now, DefaultKnockWindow)
    assert.Equal(t, 1, state.Count)
    assert.False(t, state.Revealed(DefaultKnockThreshold))
}

func TestKnockExactWindowBoundaryStillCounts(t *testing.T) {
    now := time.Now()
    state := KnockState{}.Advance(now, DefaultKnockWindow)

    // Exatamente na borda da janela ainda incrementa
    state = state.Advance(now.Add(DefaultKnockWindow), DefaultKnockWindow)
    assert.Equal(t, 2, state.Count)

    // Um instante além, reseta
    state = state.Advance(state.LastAt.Add(DefaultKnockWindow+time.Millisecond), DefaultKnockWindow)
    assert.Equal(t, 1, state.Count)
}
