package payment

import (
    "context"
    "fmt"
    "log"
    "strings"

    "cacamba-payment-api/config"
    "cacamba-payment-api/models"
    "cacamba-payment-api/services/payment/podpay"
    "cacamba-payment-api/services/payment/risepay"
    "cacamba-payment-api/utils"
)

// Service é o proxy de criação de cobrança e checagem de status. Guarda a
// credencial do lado do servidor e normaliza a conversa com o provedor.
type Service struct {
    gateway  Gateway
    provider string
}

// NewService seleciona o adaptador pelo provedor configurado. Credencial
// ausente é erro de configuração, não de pagamento.
func NewService(cfg config.PaymentConfig) (*Service, error) {
    switch cfg.Provider {
    case "risepay":
        if cfg.RisePayToken == "" {
            return nil, models.ErrConfiguration
        }
        return &Service{
            gateway:  risepay.NewClient(cfg.RisePayToken, cfg.RisePayBaseURL),
            provider: cfg.Provider,
        }, nil
    case "podpay":
        if cfg.PodPayAPIKey == "" {
            return nil, models.ErrConfiguration
        }
        return &Service{
            gateway:  podpay.NewClient(cfg.PodPayAPIKey, cfg.PodPayBaseURL),
            provider: cfg.Provider,
        }, nil
    default:
        return nil, fmt.Errorf("unknown payment provider: %s", cfg.Provider)
    }
}

// NewServiceWithGateway injeta um gateway pronto; usado em testes.
func NewServiceWithGateway(gateway Gateway, provider string) *Service {
    return &Service{gateway: gateway, provider: provider}
}

func (s *Service) Provider() string {
    return s.provider
}

// CreateCharge valida os campos obrigatórios localmente antes de qualquer
// chamada remota e repassa a criação ao adaptador. Exatamente uma chamada
// de saída; retry é responsabilidade do loop de polling, nunca daqui.
func (s *Service) CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error) {
    if amount <= 0 || strings.TrimSpace(customer.Name) == "" || utils.StripDocument(customer.Document) == "" {
        return nil, models.ErrIncompleteRequest
    }

    customer.Document = utils.StripDocument(customer.Document)

    log.Printf("Creating PIX charge via %s: amount=%.2f customer=%s", s.provider, amount, customer.Name)

    charge, err := s.gateway.CreateCharge(ctx, amount, customer)
    if err != nil {
        log.Printf("PIX charge creation failed via %s: %v", s.provider, err)
        return nil, err
    }

    log.Printf("PIX charge created via %s: identifier=%s status=%s", s.provider, charge.Identifier, charge.Status)
    return charge, nil
}

// CheckStatus sempre devolve um resultado estruturado: se o provedor
// falhar ou responder algo ambíguo, o status é Unknown e o identificador é
// ecoado, para que um tick de polling trate o problema como no-op.
func (s *Service) CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error) {
    if strings.TrimSpace(identifier) == "" {
        return nil, models.ErrIncompleteRequest
    }

    result, err := s.gateway.CheckStatus(ctx, identifier)
    if err != nil {
        log.Printf("PIX status check inconclusive via %s for %s: %v", s.provider, identifier, err)
        return &models.StatusResult{Identifier: identifier, Status: models.ChargeStatusUnknown}, nil
    }
    return result, nil
}
