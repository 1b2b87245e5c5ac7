package handlers

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "cacamba-payment-api/models"
    "cacamba-payment-api/services/payment"
)

type stubGateway struct {
    charge *models.Charge
    status *models.StatusResult
    err    error
}

func (s *stubGateway) CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error) {
    if s.err != nil {
        return nil, s.err
    }
    return s.charge, nil
}

func (s *stubGateway) CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error) {
    if s.err != nil {
        return nil, s.err
    }
    return s.status, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
    payload, err := json.Marshal(body)
    require.NoError(t, err)

    req := httptest.NewRequest("POST", "/", bytes.NewReader(payload))
    req.Header.Set("Content-Type", "application/json")
    rec := httptest.NewRecorder()
    handler(rec, req)
    return rec
}

func decodePixResponse(t *testing.T, rec *httptest.ResponseRecorder) models.PixResponse {
    var resp models.PixResponse
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    return resp
}

func TestCreatePaymentSuccessEnvelope(t *testing.T) {
    gw := &stubGateway{charge: &models.Charge{
        Identifier: "tx-1",
        Status:     models.ChargeStatusWaiting,
        Amount:     520.00,
        QRCode:     "00020126pix",
    }}
    h, err := NewPixHandler(payment.NewServiceWithGateway(gw, "risepay"))
    require.NoError(t, err)

    rec := postJSON(t, h.CreatePayment, models.PixPaymentRequest{
        Amount:   520.00,
        Customer: models.Customer{Name: "Maria", Document: "52998224725"},
    })

    assert.Equal(t, http.StatusOK, rec.Code)
    resp := decodePixResponse(t, rec)
    assert.True(t, resp.Success)

    data := resp.Data.(map[string]interface{})
    assert.Equal(t, "tx-1", data["identifier"])
    assert.Equal(t, "waiting", data["status"])
}

func TestCreatePaymentIncompleteRequest(t *testing.T) {
    gw := &stubGateway{}
    h, err := NewPixHandler(payment.NewServiceWithGateway(gw, "risepay"))
    require.NoError(t, err)

    rec := postJSON(t, h.CreatePayment, models.PixPaymentRequest{
        Amount:   0,
        Customer: models.Customer{Name: "Maria", Document: "52998224725"},
    })

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    resp := decodePixResponse(t, rec)
    assert.False(t, resp.Success)
    assert.NotEmpty(t, resp.Message)
}

func TestCreatePaymentGatewayRejection(t *testing.T) {
    gw := &stubGateway{err: models.NewGatewayError("Transação recusada")}
    h, err := NewPixHandler(payment.NewServiceWithGateway(gw, "risepay"))
    require.NoError(t, err)

    rec := postJSON(t, h.CreatePayment, models.PixPaymentRequest{
        Amount:   260.00,
        Customer: models.Customer{Name: "Maria", Document: "52998224725"},
    })

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    resp := decodePixResponse(t, rec)
    assert.False(t, resp.Success)
    assert.Equal(t, "Transação recusada", resp.Message)
}

func TestCheckStatusAlwaysHTTP200(t *testing.T) {
    // Provedor fora do ar: o corpo ainda é estruturado e o HTTP é 200,
    // para o polling do cliente tratar como tick perdido
    gw := &stubGateway{err: errors.New("connection refused")}
    h, err := NewPixHandler(payment.NewServiceWithGateway(gw, "risepay"))
    require.NoError(t, err)

    rec := postJSON(t, h.CheckStatus, models.PixStatusRequest{
        CheckStatus: true,
        Identifier:  "tx-1",
    })

    assert.Equal(t, http.StatusOK, rec.Code)
    resp := decodePixResponse(t, rec)
    assert.True(t, resp.Success)

    data := resp.Data.(map[string]interface{})
    assert.Equal(t, "tx-1", data["identifier"])
    assert.Equal(t, "unknown", data["status"])
}

func TestCheckStatusMissingIdentifier(t *testing.T) {
    gw := &stubGateway{}
    h, err := NewPixHandler(payment.NewServiceWithGateway(gw, "risepay"))
    require.NoError(t, err)

    rec := postJSON(t, h.CheckStatus, models.PixStatusRequest{CheckStatus: true})

    assert.Equal(t, http.StatusOK, rec.Code)
    resp := decodePixResponse(t, rec)
    assert.False(t, resp.Success)
}
