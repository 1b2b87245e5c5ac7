package risepay

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "cacamba-payment-api/models"
)

func TestCreateChargeNormalizesResponse(t *testing.T) {
    var gotBody map[string]interface{}
    var gotAuth string

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotAuth = r.Header.Get("Authorization")
        require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

        json.NewEncoder(w).Encode(map[string]interface{}{
            "success": true,
            "object": map[string]interface{}{
                "identifier": "tx-123",
                "status":     "waiting_payment",
                "amount":     520.00,
                "pix": map[string]interface{}{
                    "qrCode":      "00020126pix-copy-paste",
                    "qrCodeImage": "https://qr.example/tx-123.png",
                },
            },
        })
    }))
    defer srv.Close()

    client := NewClient("secret-token", srv.URL)
    charge, err := client.CreateCharge(context.Background(), 520.00, models.Customer{
        Name:     "Maria Silva",
        Document: "52998224725",
        Email:    "maria@example.com",
    })
    require.NoError(t, err)

    assert.Equal(t, "secret-token", gotAuth)
    // Valor em reais: a RisePay cobra em unidade maior, sem conversão
    assert.Equal(t, 520.00, gotBody["amount"])
    payment := gotBody["payment"].(map[string]interface{})
    assert.Equal(t, "pix", payment["method"])
    customer := gotBody["customer"].(map[string]interface{})
    assert.Equal(t, "52998224725", customer["cpf"])

    assert.Equal(t, "tx-123", charge.Identifier)
    assert.Equal(t, models.ChargeStatusWaiting, charge.Status)
    assert.Equal(t, 520.00, charge.Amount)
    assert.Equal(t, "00020126pix-copy-paste", charge.QRCode)
    assert.Equal(t, "https://qr.example/tx-123.png", charge.QRCodeImage)
}

func TestCreateChargeProviderRejection(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusBadRequest)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "success": false,
            "message": "CPF inválido",
        })
    }))
    defer srv.Close()

    client := NewClient("secret-token", srv.URL)
    _, err := client.CreateCharge(context.Background(), 260.00, models.Customer{
        Name:     "Maria Silva",
        Document: "11111111111",
    })

    var gatewayErr *models.GatewayError
    require.ErrorAs(t, err, &gatewayErr)
    assert.Equal(t, "CPF inválido", gatewayErr.Message)
}

func TestCheckStatusMapsProviderStatus(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/Transactions/tx-123", r.URL.Path)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "success": true,
            "object": map[string]interface{}{
                "identifier": "tx-123",
                "status":     "paid",
            },
        })
    }))
    defer srv.Close()

    client := NewClient("secret-token", srv.URL)
    result, err := client.CheckStatus(context.Background(), "tx-123")
    require.NoError(t, err)
    assert.Equal(t, "tx-123", result.Identifier)
    assert.Equal(t, models.ChargeStatusPaid, result.Status)
}

func TestCheckStatusServerError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    client := NewClient("secret-token", srv.URL)
    _, err := client.CheckStatus(context.Background(), "tx-123")
    assert.Error(t, err)
}

func TestStatusNormalizationUnknown(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        json.NewEncoder(w).Encode(map[string]interface{}{
            "success": true,
            "object": map[string]interface{}{
                "identifier": "tx-123",
                "status":     "something_new",
            },
        })
    }))
    defer srv.Close()

    client := NewClient("secret-token", srv.URL)
    result, err := client.CheckStatus(context.Background(), "tx-123")
    require.NoError(t, err)
    assert.Equal(t, models.ChargeStatusUnknown, result.Status)
}
