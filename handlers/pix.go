package handlers

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"

    "github.com/google/uuid"

    "cacamba-payment-api/models"
    "cacamba-payment-api/services/payment"
    "cacamba-payment-api/utils"
)

// PixHandler expõe o proxy de pagamento no mesmo contrato que a função
// serverless original: o cliente nunca vê a credencial do provedor.
type PixHandler struct {
    payments *payment.Service
}

func NewPixHandler(ps *payment.Service) (*PixHandler, error) {
    if ps == nil {
        return nil, fmt.Errorf("payment service is required")
    }
    return &PixHandler{payments: ps}, nil
}

// CreatePayment cria a cobrança PIX. Sucesso: 200 {success:true, data}.
// Falha: não-2xx {success:false, message}.
func (h *PixHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()

    var req models.PixPaymentRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("[RequestID: %s] Invalid request body: %v", requestID, err)
        utils.SendPixResponse(w, http.StatusBadRequest, models.PixResponse{
            Success: false,
            Message: "Requisição inválida",
        })
        return
    }

    log.Printf("[RequestID: %s] Creating PIX payment: amount=%.2f customer=%s",
        requestID, req.Amount, req.Customer.Name)

    charge, err := h.payments.CreateCharge(r.Context(), req.Amount, req.Customer)
    if err != nil {
        status, message := mapChargeError(requestID, err)
        utils.SendPixResponse(w, status, models.PixResponse{
            Success: false,
            Message: message,
        })
        return
    }

    utils.SendPixResponse(w, http.StatusOK, models.PixResponse{
        Success: true,
        Data:    charge,
    })
}

// CheckStatus é a variante endurecida: responde sempre HTTP 200 com um
// corpo estruturado, para que o loop de polling do cliente trate falha do
// provedor como tick perdido e não como erro fatal.
func (h *PixHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
    var req models.PixStatusRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
        utils.SendPixResponse(w, http.StatusOK, models.PixResponse{
            Success: false,
            Message: "Identificador ausente",
            Data: models.StatusResult{
                Identifier: req.Identifier,
                Status:     models.ChargeStatusUnknown,
            },
        })
        return
    }

    result, err := h.payments.CheckStatus(r.Context(), req.Identifier)
    if err != nil {
        // O serviço normaliza falhas do provedor; chegar aqui significa
        // requisição incompleta.
        utils.SendPixResponse(w, http.StatusOK, models.PixResponse{
            Success: false,
            Message: err.Error(),
            Data: models.StatusResult{
                Identifier: req.Identifier,
                Status:     models.ChargeStatusUnknown,
            },
        })
        return
    }

    utils.SendPixResponse(w, http.StatusOK, models.PixResponse{
        Success: true,
        Data:    result,
    })
}

// mapChargeError traduz a taxonomia de erros para o par (status HTTP,
// mensagem). Erro de configuração recebe mensagem genérica: o motivo real
// fica só no log do servidor.
func mapChargeError(requestID string, err error) (int, string) {
    var gatewayErr *models.GatewayError
    switch {
    case errors.Is(err, models.ErrIncompleteRequest):
        return http.StatusBadRequest, err.Error()
    case errors.Is(err, models.ErrConfiguration):
        log.Printf("[RequestID: %s] Payment credential missing", requestID)
        return http.StatusInternalServerError, models.GenericPaymentErrorMessage
    case errors.As(err, &gatewayErr):
        log.Printf("[RequestID: %s] Gateway rejected charge: %s", requestID, gatewayErr.Message)
        return http.StatusBadRequest, gatewayErr.Message
    default:
        log.Printf("[RequestID: %s] Charge creation error: %v", requestID, err)
        return http.StatusBadGateway, "Erro ao criar pagamento PIX"
    }
}
