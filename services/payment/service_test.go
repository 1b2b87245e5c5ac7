package payment

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "cacamba-payment-api/config"
    "cacamba-payment-api/models"
)

type fakeGateway struct {
    createCalls int
    statusCalls int
    charge      *models.Charge
    status      *models.StatusResult
    err         error
}

func (f *fakeGateway) CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error) {
    f.createCalls++
    if f.err != nil {
        return nil, f.err
    }
    return f.charge, nil
}

func (f *fakeGateway) CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error) {
    f.statusCalls++
    if f.err != nil {
        return nil, f.err
    }
    return f.status, nil
}

func TestNewServiceRequiresCredential(t *testing.T) {
    _, err := NewService(config.PaymentConfig{Provider: "risepay"})
    assert.ErrorIs(t, err, models.ErrConfiguration)

    _, err = NewService(config.PaymentConfig{Provider: "podpay"})
    assert.ErrorIs(t, err, models.ErrConfiguration)

    _, err = NewService(config.PaymentConfig{Provider: "stripe"})
    assert.Error(t, err)

    svc, err := NewService(config.PaymentConfig{Provider: "risepay", RisePayToken: "tok"})
    require.NoError(t, err)
    assert.Equal(t, "risepay", svc.Provider())
}

func TestCreateChargeRejectsIncompleteRequestLocally(t *testing.T) {
    gw := &fakeGateway{}
    svc := NewServiceWithGateway(gw, "risepay")

    cases := []struct {
        amount   float64
        customer models.Customer
    }{
        {0, models.Customer{Name: "Maria", Document: "52998224725"}},
        {260, models.Customer{Name: "", Document: "52998224725"}},
        {260, models.Customer{Name: "Maria", Document: ""}},
        {260, models.Customer{Name: "Maria", Document: "---"}},
    }
    for _, c := range cases {
        _, err := svc.CreateCharge(context.Background(), c.amount, c.customer)
        assert.ErrorIs(t, err, models.ErrIncompleteRequest)
    }

    // Nenhuma chamada remota pode ter acontecido
    assert.Zero(t, gw.createCalls)
}

func TestCreateChargeStripsDocument(t *testing.T) {
    gw := &fakeGateway{charge: &models.Charge{Identifier: "tx-1", Status: models.ChargeStatusWaiting}}
    svc := NewServiceWithGateway(gw, "risepay")

    charge, err := svc.CreateCharge(context.Background(), 520.00, models.Customer{
        Name:     "Maria",
        Document: "529.982.247-25",
    })
    require.NoError(t, err)
    assert.Equal(t, "tx-1", charge.Identifier)
    assert.Equal(t, 1, gw.createCalls)
}

func TestCheckStatusNormalizesFailuresToUnknown(t *testing.T) {
    gw := &fakeGateway{err: errors.New("connection refused")}
    svc := NewServiceWithGateway(gw, "risepay")

    result, err := svc.CheckStatus(context.Background(), "tx-1")
    require.NoError(t, err, "status check must always return a structured result")
    assert.Equal(t, "tx-1", result.Identifier)
    assert.Equal(t, models.ChargeStatusUnknown, result.Status)
}

func TestCheckStatusRequiresIdentifier(t *testing.T) {
    gw := &fakeGateway{}
    svc := NewServiceWithGateway(gw, "risepay")

    _, err := svc.CheckStatus(context.Background(), "  ")
    assert.ErrorIs(t, err, models.ErrIncompleteRequest)
    assert.Zero(t, gw.statusCalls)
}
