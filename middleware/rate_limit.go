// middleware/rate_limit.go
package middleware

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-redis/redis/v8"

    "cacamba-payment-api/models"
)

type RateLimiter struct {
    client *redis.Client
}

// RateLimitConfig representa a configuração de rate limiting
type RateLimitConfig struct {
    Requests int           // Número de requests permitidos
    Window   time.Duration // Janela de tempo
    Message  string        // Mensagem personalizada
}

// Configurações padrão para diferentes endpoints
var defaultConfigs = map[string]RateLimitConfig{
    "/api/pix/payments": {
        Requests: 10,
        Window:   time.Minute,
        Message:  "Muitas tentativas de pagamento. Aguarde um minuto.",
    },
    "/api/checkout": {
        Requests: 10,
        Window:   time.Minute,
        Message:  "Muitas tentativas de checkout. Aguarde um minuto.",
    },
    "/api/admin/knock": {
        Requests: 30,
        Window:   time.Minute,
        Message:  "Rate limit exceeded.",
    },
    "default": {
        Requests: 60,
        Window:   time.Minute,
        Message:  "Rate limit exceeded. Please slow down your requests.",
    },
}

// NewRateLimiter cria um novo rate limiter
func NewRateLimiter(client *redis.Client) *RateLimiter {
    return &RateLimiter{client: client}
}

// RateLimitMiddleware retorna middleware de rate limiting
func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            config := rl.getConfigForEndpoint(r.URL.Path)
            key := rl.getRateLimitKey(r)

            allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
            if err != nil {
                log.Printf("Rate limit check error: %v", err)
                // Em caso de erro, permitir o request mas logar
                next.ServeHTTP(w, r)
                return
            }

            w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
            w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
            w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

            if !allowed {
                log.Printf("Rate limit exceeded for key: %s, endpoint: %s", key, r.URL.Path)

                w.Header().Set("Content-Type", "application/json")
                w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
                w.WriteHeader(http.StatusTooManyRequests)

                json.NewEncoder(w).Encode(models.APIResponse{
                    Status:  "error",
                    Message: config.Message,
                })
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}

// getConfigForEndpoint retorna a configuração apropriada para o endpoint
func (rl *RateLimiter) getConfigForEndpoint(path string) RateLimitConfig {
    if idx := strings.Index(path, "?"); idx != -1 {
        path = path[:idx]
    }

    if config, exists := defaultConfigs[path]; exists {
        return config
    }

    if strings.HasPrefix(path, "/api/admin/") {
        return RateLimitConfig{
            Requests: 20,
            Window:   time.Minute,
            Message:  "Rate limit exceeded.",
        }
    }

    return defaultConfigs["default"]
}

// getRateLimitKey gera chave única por IP e endpoint
func (rl *RateLimiter) getRateLimitKey(r *http.Request) string {
    return fmt.Sprintf("rate_limit:%s:%s", rl.getClientIP(r), r.URL.Path)
}

// getClientIP extrai o IP real do cliente
func (rl *RateLimiter) getClientIP(r *http.Request) string {
    if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
        ips := strings.Split(ip, ",")
        return strings.TrimSpace(ips[0])
    }

    if ip := r.Header.Get("X-Real-IP"); ip != "" {
        return ip
    }

    ip := r.RemoteAddr
    if idx := strings.LastIndex(ip, ":"); idx != -1 {
        ip = ip[:idx]
    }
    return ip
}

// checkRateLimit verifica se o request está dentro do limite
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (allowed bool, remaining int, resetTime time.Time, err error) {
    now := time.Now()
    windowStart := now.Truncate(config.Window)
    windowEnd := windowStart.Add(config.Window)

    // Script Lua para operação atômica
    luaScript := `
        local key = KEYS[1]
        local window_start = ARGV[1]
        local limit = tonumber(ARGV[2])
        local current_time = ARGV[3]

        redis.call('ZREMRANGEBYSCORE', key, 0, window_start - 1)

        local current_count = redis.call('ZCARD', key)

        if current_count < limit then
            redis.call('ZADD', key, current_time, current_time)
            redis.call('EXPIRE', key, 3600)
            return {1, limit - current_count - 1}
        else
            return {0, 0}
        end
    `

    result, err := rl.client.Eval(ctx, luaScript, []string{key},
        windowStart.UnixNano(), config.Requests, now.UnixNano()).Result()
    if err != nil {
        return false, 0, time.Time{}, err
    }

    resultSlice, ok := result.([]interface{})
    if !ok || len(resultSlice) != 2 {
        return false, 0, time.Time{}, fmt.Errorf("unexpected redis result format")
    }

    allowedInt, ok1 := resultSlice[0].(int64)
    remainingInt, ok2 := resultSlice[1].(int64)
    if !ok1 || !ok2 {
        return false, 0, time.Time{}, fmt.Errorf("failed to parse redis result")
    }

    return allowedInt == 1, int(remainingInt), windowEnd, nil
}
