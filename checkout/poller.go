package checkout

import (
    "context"
    "log"
    "time"

    "cacamba-payment-api/models"
)

const statusCheckTimeout = 10 * time.Second

// pollHandle é a alça cancelável de um polling em andamento. Cada sessão
// segura no máximo uma.
type pollHandle struct {
    cancel context.CancelFunc
    done   chan struct{}
}

func (e *Engine) startPolling(s *session, identifier string) *pollHandle {
    ctx, cancel := context.WithCancel(context.Background())
    h := &pollHandle{
        cancel: cancel,
        done:   make(chan struct{}),
    }
    go e.pollLoop(ctx, s, identifier, h)
    return h
}

// pollLoop checa o status em intervalo fixo. Cada tick emite uma única
// requisição e espera a resposta antes do próximo, então nunca há mais de
// uma checagem em voo. Erros de checagem são só logados; o fluxo do
// comprador nunca é interrompido por eles.
func (e *Engine) pollLoop(ctx context.Context, s *session, identifier string, h *pollHandle) {
    defer close(h.done)

    ticker := time.NewTicker(e.pollInterval)
    defer ticker.Stop()

    deadline := time.Now().Add(e.pollBudget)

    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if time.Now().After(deadline) {
                e.expire(s)
                return
            }

            checkCtx, cancelCheck := context.WithTimeout(ctx, statusCheckTimeout)
            result, err := e.payments.CheckStatus(checkCtx, identifier)
            cancelCheck()

            if err != nil {
                log.Printf("Status check error for charge %s (ignored): %v", identifier, err)
                continue
            }
            if result.Status != models.ChargeStatusPaid {
                continue
            }

            e.confirm(s)
            return
        }
    }
}
