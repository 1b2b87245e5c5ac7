package models

type ChargeStatus string

const (
    ChargeStatusWaiting ChargeStatus = "waiting"
    ChargeStatusPaid    ChargeStatus = "paid"
    ChargeStatusUnknown ChargeStatus = "unknown"
)

// NormalizeChargeStatus traduz o status bruto do provedor para o contrato
// interno. Cada provedor usa nomes próprios; nada além deste mapeamento
// pode vazar para o controller.
func NormalizeChargeStatus(raw string) ChargeStatus {
    switch raw {
    case "waiting_payment", "pending", "created", "processing", "waiting":
        return ChargeStatusWaiting
    case "paid", "approved", "completed":
        return ChargeStatusPaid
    default:
        return ChargeStatusUnknown
    }
}

// Charge é o contrato canônico de uma cobrança PIX, independente do provedor.
type Charge struct {
    Identifier  string       `json:"identifier"`
    Status      ChargeStatus `json:"status"`
    Amount      float64      `json:"amount"`
    QRCode      string       `json:"qrCode"`
    QRCodeImage string       `json:"qrCodeImage,omitempty"`
}

type StatusResult struct {
    Identifier string       `json:"identifier"`
    Status     ChargeStatus `json:"status"`
}

type Customer struct {
    Name     string `json:"name"`
    Document string `json:"cpf"`
    Email    string `json:"email,omitempty"`
    Phone    string `json:"phone,omitempty"`
}
