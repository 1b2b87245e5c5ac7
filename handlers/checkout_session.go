package handlers

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"

    "github.com/google/uuid"
    "github.com/gorilla/mux"

    "cacamba-payment-api/checkout"
    "cacamba-payment-api/models"
    "cacamba-payment-api/utils"
)

type CheckoutHandler struct {
    engine *checkout.Engine
}

func NewCheckoutHandler(engine *checkout.Engine) (*CheckoutHandler, error) {
    if engine == nil {
        return nil, fmt.Errorf("checkout engine is required")
    }
    return &CheckoutHandler{engine: engine}, nil
}

// CreateCheckout abre a sessão, valida a entrada e cria a cobrança.
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()

    var req models.CheckoutRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("[RequestID: %s] Invalid request body: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "Requisição inválida")
        return
    }

    view, err := h.engine.Submit(r.Context(), req)
    if err != nil {
        h.sendSubmitError(w, requestID, err)
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Cobrança PIX criada",
        Data:    view,
    })
}

// GetCheckout devolve o estado atual da sessão, incluindo o QR enquanto o
// pagamento está pendente.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]

    view, err := h.engine.Get(id)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusNotFound, err.Error())
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status: "success",
        Data:   view,
    })
}

// CloseCheckout cancela o polling e descarta a sessão.
func (h *CheckoutHandler) CloseCheckout(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]

    if err := h.engine.Close(id); err != nil {
        utils.SendErrorResponse(w, http.StatusNotFound, err.Error())
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Checkout encerrado",
    })
}

// DownloadReceipt entrega o comprovante em texto plano para salvar
// localmente. Disponível apenas depois da confirmação.
func (h *CheckoutHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]

    receipt, err := h.engine.Receipt(id)
    if err != nil {
        status := http.StatusNotFound
        if errors.Is(err, models.ErrReceiptNotReady) {
            status = http.StatusConflict
        }
        utils.SendErrorResponse(w, status, err.Error())
        return
    }

    w.Header().Set("Content-Type", "text/plain; charset=utf-8")
    w.Header().Set("Content-Disposition",
        fmt.Sprintf("attachment; filename=comprovante-%s.txt", receipt.ReceiptCode))
    w.WriteHeader(http.StatusOK)
    w.Write([]byte(receipt.Text()))
}

// sendSubmitError traduz a taxonomia do engine. Killswitch bloqueado e
// credencial ausente compartilham a mensagem genérica de recusa: para o
// comprador são indistinguíveis de um erro real do provedor.
func (h *CheckoutHandler) sendSubmitError(w http.ResponseWriter, requestID string, err error) {
    var gatewayErr *models.GatewayError
    switch {
    case errors.Is(err, models.ErrKillswitchBlocked):
        utils.SendErrorResponse(w, http.StatusBadRequest, models.GenericPaymentErrorMessage)
    case errors.Is(err, models.ErrConfiguration):
        log.Printf("[RequestID: %s] Payment credential missing", requestID)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.GenericPaymentErrorMessage)
    case errors.Is(err, models.ErrUnknownProduct),
        errors.Is(err, models.ErrInvalidQuantity),
        errors.Is(err, models.ErrInvalidDocument),
        errors.Is(err, models.ErrIncompleteRequest):
        utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
    case errors.As(err, &gatewayErr):
        log.Printf("[RequestID: %s] Gateway rejected charge: %s", requestID, gatewayErr.Message)
        utils.SendErrorResponse(w, http.StatusBadRequest, gatewayErr.Message)
    default:
        log.Printf("[RequestID: %s] Checkout submit error: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusBadGateway, "Erro ao criar pagamento PIX")
    }
}
