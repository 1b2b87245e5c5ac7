package middleware

import (
    "log"
    "net/http"
    "strings"

    "cacamba-payment-api/services/auth"
    "cacamba-payment-api/utils"
)

// PanelAuthMiddleware protege os endpoints administrativos com o token de
// painel emitido após o gesto secreto.
func PanelAuthMiddleware(tokens *auth.PanelTokenService) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            authHeader := r.Header.Get("Authorization")
            if authHeader == "" {
                log.Printf("Missing Authorization header from %s", r.RemoteAddr)
                utils.SendErrorResponse(w, http.StatusUnauthorized, "Missing authorization header")
                return
            }

            parts := strings.Split(authHeader, " ")
            if len(parts) != 2 || parts[0] != "Bearer" {
                log.Printf("Invalid Authorization header format from %s", r.RemoteAddr)
                utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid authorization header format")
                return
            }

            if err := tokens.ValidatePanelToken(parts[1]); err != nil {
                log.Printf("Panel token validation failed from %s: %v", r.RemoteAddr, err)

                var message string
                switch err {
                case auth.ErrTokenExpired:
                    message = "Token expired"
                default:
                    message = "Invalid token"
                }
                utils.SendErrorResponse(w, http.StatusUnauthorized, message)
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}
