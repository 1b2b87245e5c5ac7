package checkout

import (
    "context"
    "log"
    "sync"
    "time"

    "github.com/google/uuid"

    "cacamba-payment-api/catalog"
    "cacamba-payment-api/models"
    "cacamba-payment-api/money"
    "cacamba-payment-api/services/killswitch"
    "cacamba-payment-api/utils"
)

const (
    // DefaultPollInterval é o intervalo fixo entre checagens de status.
    DefaultPollInterval = 5 * time.Second

    // DefaultPollBudget limita a duração total do polling. A fonte deixava
    // o polling sem teto; aqui a sessão expira depois deste orçamento.
    DefaultPollBudget = 15 * time.Minute
)

// ChargeService é o que o engine precisa do proxy de pagamento.
type ChargeService interface {
    CreateCharge(ctx context.Context, amount float64, customer models.Customer) (*models.Charge, error)
    CheckStatus(ctx context.Context, identifier string) (*models.StatusResult, error)
}

type State string

const (
    StateIdle            State = "idle"
    StateSubmitting      State = "submitting"
    StateAwaitingPayment State = "awaiting_payment"
    StateConfirmed       State = "confirmed"
    StateExpired         State = "expired"
    StateClosed          State = "closed"
)

type session struct {
    id        string
    product   models.Product
    quantity  int
    customer  models.Customer
    amount    float64
    state     State
    charge    *models.Charge
    receipt   *models.Receipt
    createdAt time.Time
    poll      *pollHandle
}

// SessionView é o retrato imutável de uma sessão devolvido aos handlers.
type SessionView struct {
    ID           string         `json:"id"`
    State        State          `json:"state"`
    Product      models.Product `json:"product"`
    Quantity     int            `json:"quantity"`
    Amount       float64        `json:"amount"`
    Charge       *models.Charge `json:"charge,omitempty"`
    ReceiptReady bool           `json:"receiptReady"`
}

// Engine orquestra o fluxo de checkout do lado do servidor: valida a
// entrada, cria a cobrança, mantém o polling de liquidação e gera o
// comprovante na confirmação. As sessões vivem só em memória.
type Engine struct {
    payments ChargeService
    ks       *killswitch.Killswitch

    mu       sync.Mutex
    sessions map[string]*session

    pollInterval time.Duration
    pollBudget   time.Duration
}

func NewEngine(payments ChargeService, ks *killswitch.Killswitch) *Engine {
    return NewEngineWithTiming(payments, ks, DefaultPollInterval, DefaultPollBudget)
}

func NewEngineWithTiming(payments ChargeService, ks *killswitch.Killswitch, pollInterval, pollBudget time.Duration) *Engine {
    return &Engine{
        payments:     payments,
        ks:           ks,
        sessions:     make(map[string]*session),
        pollInterval: pollInterval,
        pollBudget:   pollBudget,
    }
}

// Submit abre a sessão e cria a cobrança em um passo. Guardas, na ordem:
// killswitch habilitado, produto e quantidade válidos, documento com
// checksum correto. Violações não geram nenhuma chamada de rede.
func (e *Engine) Submit(ctx context.Context, req models.CheckoutRequest) (*SessionView, error) {
    if !e.ks.Enabled() {
        log.Printf("Checkout blocked by killswitch for product %d", req.ProductID)
        return nil, models.ErrKillswitchBlocked
    }

    product, ok := catalog.ByID(req.ProductID)
    if !ok {
        return nil, models.ErrUnknownProduct
    }
    if !catalog.QuantityAllowed(product, req.Quantity) {
        return nil, models.ErrInvalidQuantity
    }
    if !utils.IsValidDocument(req.Document) {
        return nil, models.ErrInvalidDocument
    }

    amount := money.Round(product.UnitPrice * float64(req.Quantity))

    s := &session{
        id:       uuid.New().String(),
        product:  product,
        quantity: req.Quantity,
        customer: models.Customer{
            Name:     req.Name,
            Document: utils.StripDocument(req.Document),
            Email:    req.Email,
            Phone:    req.Phone,
        },
        amount:    amount,
        state:     StateSubmitting,
        createdAt: time.Now(),
    }

    e.mu.Lock()
    e.sessions[s.id] = s
    e.mu.Unlock()

    charge, err := e.payments.CreateCharge(ctx, amount, s.customer)
    if err != nil {
        // Falha na criação volta a sessão para o estado inicial e some
        // com ela; o formulário do comprador permanece intacto.
        e.mu.Lock()
        delete(e.sessions, s.id)
        e.mu.Unlock()
        return nil, err
    }

    e.mu.Lock()
    // Close pode ter chegado enquanto a cobrança era criada; o estado é
    // rechecado antes de aplicar a transição e a cobrança é descartada se
    // a sessão já avançou.
    if current, ok := e.sessions[s.id]; !ok || current != s || s.state != StateSubmitting {
        e.mu.Unlock()
        log.Printf("Checkout %s closed during charge creation, discarding charge %s", s.id, charge.Identifier)
        return nil, models.ErrSessionNotFound
    }
    s.charge = charge
    s.state = StateAwaitingPayment
    s.poll = e.startPolling(s, charge.Identifier)
    view := s.view()
    e.mu.Unlock()

    log.Printf("Checkout %s awaiting payment: charge=%s amount=%.2f", s.id, charge.Identifier, amount)
    return &view, nil
}

// Get devolve o retrato atual da sessão.
func (e *Engine) Get(id string) (*SessionView, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    s, ok := e.sessions[id]
    if !ok {
        return nil, models.ErrSessionNotFound
    }
    view := s.view()
    return &view, nil
}

// Close cancela o polling e descarta a cobrança e o pedido. Resultados de
// checagens em voo são ignorados porque o estado já terá avançado.
func (e *Engine) Close(id string) error {
    e.mu.Lock()
    defer e.mu.Unlock()

    s, ok := e.sessions[id]
    if !ok {
        return models.ErrSessionNotFound
    }

    s.state = StateClosed
    s.charge = nil
    if s.poll != nil {
        s.poll.cancel()
        s.poll = nil
    }
    delete(e.sessions, id)

    log.Printf("Checkout %s closed", id)
    return nil
}

// Receipt só existe depois da confirmação e é gerado uma única vez.
func (e *Engine) Receipt(id string) (*models.Receipt, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    s, ok := e.sessions[id]
    if !ok {
        return nil, models.ErrSessionNotFound
    }
    if s.state != StateConfirmed || s.receipt == nil {
        return nil, models.ErrReceiptNotReady
    }
    receipt := *s.receipt
    return &receipt, nil
}

// Shutdown cancela todos os pollings ativos.
func (e *Engine) Shutdown() {
    e.mu.Lock()
    defer e.mu.Unlock()

    for _, s := range e.sessions {
        if s.poll != nil {
            s.poll.cancel()
            s.poll = nil
        }
    }
}

// confirm aplica a transição AwaitingPayment→Confirmed. O estado é
// rechecado sob o lock: um tick atrasado depois de Close ou de uma
// confirmação anterior não gera segundo comprovante.
func (e *Engine) confirm(s *session) {
    e.mu.Lock()
    defer e.mu.Unlock()

    if s.state != StateAwaitingPayment {
        return
    }

    s.state = StateConfirmed
    s.receipt = &models.Receipt{
        DocumentNumber:   utils.FormatDocument(s.customer.Document),
        ProductTitle:     s.product.Title,
        SizeLabel:        s.product.SizeLabel,
        Quantity:         s.quantity,
        AmountPaid:       s.amount,
        ReceiptCode:      utils.GenerateReceiptCode(),
        ProductReference: utils.GenerateProductReference(),
        Timestamp:        time.Now(),
    }
    if s.poll != nil {
        s.poll.cancel()
        s.poll = nil
    }

    log.Printf("Checkout %s confirmed, receipt %s issued", s.id, s.receipt.ReceiptCode)
}

// expire encerra sessões cujo orçamento de polling acabou.
func (e *Engine) expire(s *session) {
    e.mu.Lock()
    defer e.mu.Unlock()

    if s.state != StateAwaitingPayment {
        return
    }
    s.state = StateExpired
    if s.poll != nil {
        s.poll.cancel()
        s.poll = nil
    }

    log.Printf("Checkout %s expired before payment confirmation", s.id)
}

func (s *session) view() SessionView {
    return SessionView{
        ID:           s.id,
        State:        s.state,
        Product:      s.product,
        Quantity:     s.quantity,
        Amount:       s.amount,
        Charge:       s.charge,
        ReceiptReady: s.receipt != nil,
    }
}
