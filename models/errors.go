package models

import "errors"

var (
    ErrIncompleteRequest = errors.New("valor e dados do cliente são obrigatórios")
    ErrInvalidDocument   = errors.New("CPF ou CNPJ inválido")
    ErrInvalidQuantity   = errors.New("quantidade fora do intervalo permitido")
    ErrUnknownProduct    = errors.New("produto não encontrado")
    ErrConfiguration     = errors.New("payment credential not configured")
    ErrKillswitchBlocked = errors.New("payments disabled by killswitch")
    ErrSessionNotFound   = errors.New("checkout não encontrado")
    ErrReceiptNotReady   = errors.New("comprovante disponível apenas após a confirmação do pagamento")
)

// GatewayError carrega a mensagem de recusa do provedor. É recuperável:
// o cliente pode corrigir os dados e tentar de novo.
type GatewayError struct {
    Message string
}

func (e *GatewayError) Error() string {
    return e.Message
}

func NewGatewayError(message string) *GatewayError {
    if message == "" {
        message = "Erro ao criar pagamento PIX"
    }
    return &GatewayError{Message: message}
}

// GenericPaymentErrorMessage é usada quando o motivo real não deve ser
// revelado ao comprador (killswitch, credencial ausente). Precisa ser
// indistinguível de uma recusa comum do provedor.
const GenericPaymentErrorMessage = "Não foi possível processar o pagamento. Tente novamente em instantes."
