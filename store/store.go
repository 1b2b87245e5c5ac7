package store

import "context"

// KV é a interface de persistência chave-valor injetada nos componentes
// que precisam de estado durável (hoje, apenas o killswitch).
type KV interface {
    Get(ctx context.Context, key string) (value string, found bool, err error)
    Set(ctx context.Context, key, value string) error
    Close() error
}
