package payment

import (
    "context"

    "cacamba-payment-api/models"
)

// Gateway é o contrato canônico implementado por cada adaptador de
// provedor. O formato de resposta do provedor nunca atravessa esta
// fronteira.
type Gateway interface {
    CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error)
    CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error)
}
