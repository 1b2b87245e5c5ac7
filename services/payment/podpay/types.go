package podpay

// A PodPay usa um formato achatado, sem flag de sucesso: erros chegam com
// status HTTP não-2xx e corpo {error, message}. Valores em centavos.

type createTransactionRequest struct {
    Amount        int64        `json:"amount"`
    PaymentMethod string       `json:"paymentMethod"`
    Customer      customerType `json:"customer"`
}

type customerType struct {
    Name     string       `json:"name"`
    Document documentType `json:"document"`
    Email    string       `json:"email,omitempty"`
    Phone    string       `json:"phone,omitempty"`
}

type documentType struct {
    Number string `json:"number"`
    Type   string `json:"type"`
}

type pixType struct {
    QRCode    string `json:"qrcode"`
    QRCodeURL string `json:"qrcodeUrl"`
}

type transactionResponse struct {
    ID     string   `json:"id"`
    Status string   `json:"status"`
    Amount int64    `json:"amount"`
    Pix    *pixType `json:"pix"`
}

type errorResponse struct {
    Error   string `json:"error"`
    Message string `json:"message"`
}
