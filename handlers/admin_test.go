package handlers

import (
    "bytes"
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "cacamba-payment-api/models"
    "cacamba-payment-api/services/auth"
    "cacamba-payment-api/services/killswitch"
    "cacamba-payment-api/store"
)

func newAdminFixture(t *testing.T) (*AdminHandler, *killswitch.Killswitch, *auth.PanelTokenService) {
    t.Helper()

    mr := miniredis.RunT(t)
    kv, err := store.NewRedisKV("redis://" + mr.Addr())
    require.NoError(t, err)
    t.Cleanup(func() { kv.Close() })

    ks, err := killswitch.New(context.Background(), kv)
    require.NoError(t, err)

    tokens := auth.NewPanelTokenService("test-secret", "cacamba-payment-api")

    h, err := NewAdminHandler(ks, tokens, "session-key", 7, 2*time.Second)
    require.NoError(t, err)
    return h, ks, tokens
}

func knockOnce(h *AdminHandler, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
    req := httptest.NewRequest("POST", "/api/admin/knock", nil)
    for _, c := range cookies {
        req.AddCookie(c)
    }
    rec := httptest.NewRecorder()
    h.Knock(rec, req)

    if set := rec.Result().Cookies(); len(set) > 0 {
        cookies = set
    }
    return rec, cookies
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
    var resp models.APIResponse
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    return resp
}

func TestKnockRevealsPanelOnSeventh(t *testing.T) {
    h, _, tokens := newAdminFixture(t)

    var cookies []*http.Cookie
    var rec *httptest.ResponseRecorder

    for i := 0; i < 6; i++ {
        rec, cookies = knockOnce(h, cookies)
        require.Equal(t, http.StatusOK, rec.Code)

        resp := decodeAPIResponse(t, rec)
        data := resp.Data.(map[string]interface{})
        assert.Equal(t, false, data["revealed"], "knock %d should not reveal", i+1)
    }

    rec, _ = knockOnce(h, cookies)
    require.Equal(t, http.StatusOK, rec.Code)

    resp := decodeAPIResponse(t, rec)
    data := resp.Data.(map[string]interface{})
    assert.Equal(t, true, data["revealed"])

    token, ok := data["token"].(string)
    require.True(t, ok)
    require.NoError(t, tokens.ValidatePanelToken(token))
}

func TestKnockCounterResetsAfterReveal(t *testing.T) {
    h, _, _ := newAdminFixture(t)

    var cookies []*http.Cookie
    var rec *httptest.ResponseRecorder

    for i := 0; i < 7; i++ {
        rec, cookies = knockOnce(h, cookies)
    }
    resp := decodeAPIResponse(t, rec)
    require.Equal(t, true, resp.Data.(map[string]interface{})["revealed"])

    // O gesto precisa recomeçar do zero depois de revelar
    rec, _ = knockOnce(h, cookies)
    resp = decodeAPIResponse(t, rec)
    assert.Equal(t, false, resp.Data.(map[string]interface{})["revealed"])
}

func TestToggleKillswitchPersists(t *testing.T) {
    h, ks, _ := newAdminFixture(t)
    require.True(t, ks.Enabled())

    body, _ := json.Marshal(map[string]bool{"enabled": false})
    req := httptest.NewRequest("POST", "/api/admin/killswitch", bytes.NewReader(body))
    rec := httptest.NewRecorder()
    h.ToggleKillswitch(rec, req)

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.False(t, ks.Enabled())
}

func TestToggleKillswitchRequiresEnabledField(t *testing.T) {
    h, ks, _ := newAdminFixture(t)

    req := httptest.NewRequest("POST", "/api/admin/killswitch", bytes.NewReader([]byte(`{}`)))
    rec := httptest.NewRecorder()
    h.ToggleKillswitch(rec, req)

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.True(t, ks.Enabled())
}

func TestGetPanelReportsState(t *testing.T) {
    h, ks, _ := newAdminFixture(t)
    require.NoError(t, ks.Toggle(context.Background(), false))

    req := httptest.NewRequest("GET", "/api/admin/panel", nil)
    rec := httptest.NewRecorder()
    h.GetPanel(rec, req)

    resp := decodeAPIResponse(t, rec)
    assert.Equal(t, false, resp.Data.(map[string]interface{})["paymentsEnabled"])
}
