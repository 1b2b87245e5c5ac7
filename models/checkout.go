package models

// CheckoutRequest abre e submete um pedido em uma única chamada.
type CheckoutRequest struct {
    ProductID int    `json:"productId"`
    Quantity  int    `json:"quantity"`
    Name      string `json:"name"`
    Document  string `json:"document"`
    Email     string `json:"email,omitempty"`
    Phone     string `json:"phone,omitempty"`
}

// PixPaymentRequest é o corpo aceito pelo proxy de criação de cobrança,
// no mesmo formato que a função serverless original expunha ao storefront.
type PixPaymentRequest struct {
    Amount   float64  `json:"amount"`
    Customer Customer `json:"customer"`
}

// PixStatusRequest é o corpo da variante endurecida de checagem de status.
type PixStatusRequest struct {
    CheckStatus bool   `json:"checkStatus"`
    Identifier  string `json:"identifier"`
}
