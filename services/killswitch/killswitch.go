package killswitch

import (
    "context"
    "fmt"
    "log"
    "sync"

    "cacamba-payment-api/store"
)

// StorageKey é a mesma chave usada pelo storefront original no
// armazenamento local do navegador; valores "1"/"0".
const StorageKey = "pks_e7x9z"

// Killswitch guarda a flag que libera ou bloqueia o checkout. O valor vive
// em memória para a leitura quente e escreve-through na persistência
// injetada no Toggle. Ausente na persistência, o padrão é habilitado.
type Killswitch struct {
    kv  store.KV
    key string

    mu      sync.RWMutex
    enabled bool
}

func New(ctx context.Context, kv store.KV) (*Killswitch, error) {
    k := &Killswitch{kv: kv, key: StorageKey, enabled: true}

    value, found, err := kv.Get(ctx, k.key)
    if err != nil {
        return nil, fmt.Errorf("failed to load killswitch state: %v", err)
    }
    if found && value == "0" {
        k.enabled = false
    }

    log.Printf("Killswitch initialized: enabled=%v", k.enabled)
    return k, nil
}

func (k *Killswitch) Enabled() bool {
    k.mu.RLock()
    defer k.mu.RUnlock()
    return k.enabled
}

// Toggle persiste primeiro e só então atualiza a memória, em uma única
// atribuição sob o lock.
func (k *Killswitch) Toggle(ctx context.Context, enabled bool) error {
    value := "0"
    if enabled {
        value = "1"
    }
    if err := k.kv.Set(ctx, k.key, value); err != nil {
        return fmt.Errorf("failed to persist killswitch state: %v", err)
    }

    k.mu.Lock()
    k.enabled = enabled
    k.mu.Unlock()

    log.Printf("Killswitch toggled: enabled=%v", enabled)
    return nil
}
