package models

import (
    "fmt"
    "strings"
    "time"

    "cacamba-payment-api/money"
)

// Receipt é gerado uma única vez quando a cobrança é confirmada e nunca
// é enviado a nenhum servidor.
type Receipt struct {
    DocumentNumber   string    `json:"documentNumber"`
    ProductTitle     string    `json:"productTitle"`
    SizeLabel        string    `json:"sizeLabel"`
    Quantity         int       `json:"quantity"`
    AmountPaid       float64   `json:"amountPaid"`
    ReceiptCode      string    `json:"receiptCode"`
    ProductReference string    `json:"productReference"`
    Timestamp        time.Time `json:"timestamp"`
}

// Text renderiza o comprovante em texto plano para download local.
func (r *Receipt) Text() string {
    var b strings.Builder
    b.WriteString("COMPROVANTE DE PAGAMENTO\n")
    b.WriteString("========================\n\n")
    fmt.Fprintf(&b, "Código do comprovante: %s\n", r.ReceiptCode)
    fmt.Fprintf(&b, "Referência do produto: %s\n", r.ProductReference)
    fmt.Fprintf(&b, "Data: %s\n\n", r.Timestamp.Format("02/01/2006 15:04:05"))
    fmt.Fprintf(&b, "Produto: %s (%s)\n", r.ProductTitle, r.SizeLabel)
    fmt.Fprintf(&b, "Quantidade: %d\n", r.Quantity)
    fmt.Fprintf(&b, "CPF/CNPJ: %s\n", r.DocumentNumber)
    fmt.Fprintf(&b, "Valor pago: %s\n", money.FormatPriceBRL(r.AmountPaid))
    b.WriteString("\nPagamento via PIX confirmado.\n")
    return b.String()
}
