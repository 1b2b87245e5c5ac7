package killswitch

import "time"

const (
    // DefaultKnockThreshold é o número de toques que revela o painel.
    DefaultKnockThreshold = 7

    // DefaultKnockWindow é a janela deslizante entre toques consecutivos.
    DefaultKnockWindow = 2 * time.Second
)

// KnockState acompanha o gesto secreto: o contador volta a 1 sempre que o
// intervalo desde o toque anterior excede a janela, senão incrementa.
type KnockState struct {
    Count  int
    LastAt time.Time
}

// Advance registra um toque no instante now e devolve o novo estado.
func (s KnockState) Advance(now time.Time, window time.Duration) KnockState {
    if s.Count == 0 || now.Sub(s.LastAt) > window {
        return KnockState{Count: 1, LastAt: now}
    }
    return KnockState{Count: s.Count + 1, LastAt: now}
}

// Revealed informa se o gesto foi completado com o estado atual.
func (s KnockState) Revealed(threshold int) bool {
    return s.Count >= threshold
}
