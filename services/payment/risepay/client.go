package risepay

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
)

const (
    DefaultBaseURL   = "https://api.risepay.com.br/api/External"
    RequestTimeout   = 30 * time.Second
    transactionsPath = "/Transactions"
)

// Client fala com a API da RisePay. Valores em reais (unidade maior); a
// RisePay não cobra em centavos.
type Client struct {
    token   string
    baseURL string
    client  *http.Client
}

func NewClient(token, baseURL string) *Client {
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
        token:   token,
        baseURL: strings.TrimSuffix(baseURL, "/"),
        client: &http.Client{
            Timeout:   RequestTimeout,
            Transport: transport,
        },
    }
}

func (c *Client) CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error) {
    startTime := time.Now()

    payload := createTransactionRequest{
        Amount:  amount,
        Payment: paymentType{Method: "pix"},
        Customer: customerType{
            Name:  customer.Name,
            CPF:   customer.Document,
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
    httpReq.Header.Set("Authorization", c.token)
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

    log.Printf("RisePay response received in %v", time.Since(startTime))

    var response transactionResponse
    if err := json.Unmarshal(respBody, &response); err != nil {
        return nil, fmt.Errorf("error decoding response: %v, response body: %s", err, string(respBody))
    }

    if resp.StatusCode < 200 || resp.StatusCode >= 300 || !response.Success || response.Object == nil {
        return nil, models.NewGatewayError(response.Message)
    }

    charge := &models.Charge{
        Identifier: response.Object.Identifier,
        Status:     models.NormalizeChargeStatus(response.Object.Status),
        Amount:     response.Object.Amount,
    }
    if response.Object.Pix != nil {
        charge.QRCode = response.Object.Pix.QRCode
        charge.QRCodeImage = response.Object.Pix.QRCodeImage
    }
    return charge, nil
}

func (c *Client) CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error) {
    url := fmt.Sprintf("%s%s/%s", c.baseURL, transactionsPath, identifier)

    httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
    if err != nil {
        return nil, fmt.Errorf("error creating status request: %v", err)
    }
    httpReq.Header.Set("Authorization", c.token)

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

    if !response.Success || response.Object == nil {
        return nil, models.NewGatewayError(response.Message)
    }

    return &models.StatusResult{
        Identifier: response.Object.Identifier,
        Status:     models.NormalizeChargeStatus(response.Object.Status),
    }, nil
}
