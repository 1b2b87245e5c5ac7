package handlers

import (
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/gorilla/sessions"

    "cacamba-payment-api/models"
    "cacamba-payment-api/services/auth"
    "cacamba-payment-api/services/killswitch"
    "cacamba-payment-api/utils"
)

const knockSessionName = "pks_admin"

// AdminHandler implementa o gesto secreto que revela o painel e o toggle
// do killswitch atrás do token de painel.
type AdminHandler struct {
    ks       *killswitch.Killswitch
    tokens   *auth.PanelTokenService
    sessions sessions.Store

    knockThreshold int
    knockWindow    time.Duration
}

func NewAdminHandler(ks *killswitch.Killswitch, tokens *auth.PanelTokenService, sessionKey string, threshold int, window time.Duration) (*AdminHandler, error) {
    if ks == nil {
        return nil, fmt.Errorf("killswitch is required")
    }
    if tokens == nil {
        return nil, fmt.Errorf("panel token service is required")
    }
    if sessionKey == "" {
        return nil, fmt.Errorf("session key is required")
    }
    if threshold <= 0 {
        threshold = killswitch.DefaultKnockThreshold
    }
    if window <= 0 {
        window = killswitch.DefaultKnockWindow
    }

    store := sessions.NewCookieStore([]byte(sessionKey))
    store.Options = &sessions.Options{
        Path:     "/api/admin",
        MaxAge:   int((10 * time.Minute).Seconds()),
        HttpOnly: true,
    }

    return &AdminHandler{
        ks:             ks,
        tokens:         tokens,
        sessions:       store,
        knockThreshold: threshold,
        knockWindow:    window,
    }, nil
}

// Knock registra um toque do gesto secreto. No sétimo toque dentro da
// janela deslizante a resposta traz o token de painel e o contador zera.
func (h *AdminHandler) Knock(w http.ResponseWriter, r *http.Request) {
    sess, err := h.sessions.Get(r, knockSessionName)
    if err != nil {
        // Cookie corrompido: recomeça do zero.
        sess, _ = h.sessions.New(r, knockSessionName)
    }

    state := killswitch.KnockState{}
    if count, ok := sess.Values["count"].(int); ok {
        state.Count = count
    }
    if lastAt, ok := sess.Values["last_at"].(int64); ok {
        state.LastAt = time.UnixMilli(lastAt)
    }

    state = state.Advance(time.Now(), h.knockWindow)

    if state.Revealed(h.knockThreshold) {
        token, expiresAt, err := h.tokens.IssuePanelToken()
        if err != nil {
            log.Printf("Failed to issue panel token: %v", err)
            utils.SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
            return
        }

        sess.Values["count"] = 0
        sess.Values["last_at"] = int64(0)
        if err := sess.Save(r, w); err != nil {
            log.Printf("Failed to save knock session: %v", err)
        }

        log.Printf("Admin panel revealed for %s", r.RemoteAddr)
        utils.SendSuccessResponse(w, models.APIResponse{
            Status:  "success",
            Message: "Panel revealed",
            Data: map[string]interface{}{
                "revealed":  true,
                "token":     token,
                "expiresAt": expiresAt.Format(time.RFC3339),
            },
        })
        return
    }

    sess.Values["count"] = state.Count
    sess.Values["last_at"] = state.LastAt.UnixMilli()
    if err := sess.Save(r, w); err != nil {
        log.Printf("Failed to save knock session: %v", err)
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status: "success",
        Data: map[string]interface{}{
            "revealed": false,
        },
    })
}

// GetPanel mostra o estado atual do killswitch. Requer o token de painel.
func (h *AdminHandler) GetPanel(w http.ResponseWriter, r *http.Request) {
    utils.SendSuccessResponse(w, models.APIResponse{
        Status: "success",
        Data: map[string]interface{}{
            "paymentsEnabled": h.ks.Enabled(),
        },
    })
}

// ToggleKillswitch liga ou desliga o checkout. Requer o token de painel.
func (h *AdminHandler) ToggleKillswitch(w http.ResponseWriter, r *http.Request) {
    var req struct {
        Enabled *bool `json:"enabled"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Campo 'enabled' é obrigatório")
        return
    }

    if err := h.ks.Toggle(r.Context(), *req.Enabled); err != nil {
        log.Printf("Failed to toggle killswitch: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status: "success",
        Data: map[string]interface{}{
            "paymentsEnabled": *req.Enabled,
        },
    })
}
