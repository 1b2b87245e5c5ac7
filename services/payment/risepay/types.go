package risepay

type createTransactionRequest struct {
    Amount   float64      `json:"amount"`
    Payment  paymentType  `json:"payment"`
    Customer customerType `json:"customer"`
}

type paymentType struct {
    Method string `json:"method"`
}

type customerType struct {
    Name  string `json:"name"`
    CPF   string `json:"cpf"`
    Email string `json:"email"`
    Phone string `json:"phone"`
}

type pixType struct {
    QRCode      string `json:"qrCode"`
    QRCodeImage string `json:"qrCodeImage"`
}

type transactionObject struct {
    Identifier string   `json:"identifier"`
    Status     string   `json:"status"`
    Amount     float64  `json:"amount"`
    EndToEndID string   `json:"endToEndId"`
    Pix        *pixType `json:"pix"`
}

type transactionResponse struct {
    Success bool               `json:"success"`
    Message string             `json:"message"`
    Object  *transactionObject `json:"object"`
}
