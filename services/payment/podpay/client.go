package podpay

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "strings"
    "time"

    "cacamba-payment-api/models"
    "cacamba-payment-api/money"
    "cacamba-payment-api/utils"
)

const (
    DefaultBaseURL   = "https://api.podpay.com.br/v1"
    RequestTimeout   = 30 * time.Second
    transactionsPath = "/transactions"
)

// Client fala com a API da PodPay, que cobra em centavos. A conversão
// reais→centavos acontece aqui e em nenhum outro lugar.
type Client struct {
    apiKey  string
    baseURL string
    client  *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
    if baseURL == "" {
        baseURL = DefaultBaseURL
    }

    transport := &http.Transport{
        MaxIdleConns:        100,
        MaxIdleConnsPerHost: 20,
        IdleConnTimeout:     90 * time.Second,
        TLSHandshakeTimeout: 10 * time.Second,
    }

    return &Client{
        apiKey:  apiKey,
        baseURL: strings.TrimSuffix(baseURL, "/"),
        client: &http.Client{
            Timeout:   RequestTimeout,
            Transport: transport,
        },
    }
}

func documentTypeFor(document string) string {
    if len(utils.StripDocument(document)) == 14 {
        return "cnpj"
    }
    return "cpf"
}

func (c *Client) CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error) {
    startTime := time.Now()

    payload := createTransactionRequest{
        Amount:        money.ToCents(amount),
        PaymentMethod: "pix",
        Customer: customerType{
            Name: customer.Name,
            Document: documentType{
                Number: customer.Document,
                Type:   documentTypeFor(customer.Document),
            },
            Email: customer.Email,
            Phone: customer.Phone,
        },
    }

    jsonPayload, err := json.Marshal(payload)
    if err != nil {
        return nil, fmt.Errorf("error marshaling request: %v", err)
    }

    httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+transactionsPath, bytes.NewBuffer(jsonPayload))
    if err != nil {
        return nil, fmt.Errorf("error creating request: %v", err)
    }
    httpReq.Header.Set("x-api-key", c.apiKey)
    httpReq.Header.Set("Content-Type", "application/json")

    resp, err := c.client.Do(httpReq)
    if err != nil {
        return nil, fmt.Errorf("error making request: %v", err)
    }
    defer resp.Body.Close()

    respBody, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, fmt.Errorf("error reading response body: %v", err)
    }

    log.Printf("PodPay response received in %v", time.Since(startTime))

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        var errResp errorResponse
        if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
            return nil, models.NewGatewayError(errResp.Message)
        }
        return nil, models.NewGatewayError(fmt.Sprintf("PodPay request failed with HTTP %d", resp.StatusCode))
    }

    var response transactionResponse
    if err := json.Unmarshal(respBody, &response); err != nil {
        return nil, fmt.Errorf("error decoding response: %v, response body: %s", err, string(respBody))
    }

    charge := &models.Charge{
        Identifier: response.ID,
        Status:     models.NormalizeChargeStatus(response.Status),
        Amount:     float64(response.Amount) / 100,
    }
    if response.Pix != nil {
        charge.QRCode = response.Pix.QRCode
        charge.QRCodeImage = response.Pix.QRCodeURL
    }
    return charge, nil
}

func (c *Client) CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error) {
    url := fmt.Sprintf("%s%s/%s", c.baseURL, transactionsPath, identifier)

    httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
    if err != nil {
        return nil, fmt.Errorf("error creating status request: %v", err)
    }
    httpReq.Header.Set("x-api-key", c.apiKey)

    resp, err := c.client.Do(httpReq)
    if err != nil {
        return nil, fmt.Errorf("error making status request: %v", err)
    }
    defer resp.Body.Close()

    respBody, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, fmt.Errorf("error reading status response: %v", err)
    }

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return nil, fmt.Errorf("status request failed with HTTP %d", resp.StatusCode)
    }

    var response transactionResponse
    if err := json.Unmarshal(respBody, &response); err != nil {
        return nil, fmt.Errorf("error decoding status response: %v", err)
    }

    return &models.StatusResult{
        Identifier: response.ID,
        Status:     models.NormalizeChargeStatus(response.Status),
    }, nil
}
