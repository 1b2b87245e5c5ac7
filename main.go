package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"

    "github.com/gorilla/mux"

    "cacamba-payment-api/checkout"
    "cacamba-payment-api/config"
    "cacamba-payment-api/handlers"
    "cacamba-payment-api/middleware"
    "cacamba-payment-api/services/auth"
    "cacamba-payment-api/services/killswitch"
    "cacamba-payment-api/services/payment"
    "cacamba-payment-api/store"
)

func corsMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
            w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
            w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

            // Responder imediatamente para OPTIONS
            if r.Method == "OPTIONS" {
                w.WriteHeader(http.StatusOK)
                return
            }
            next.ServeHTTP(w, r)
        })
    }
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(wrapper, r)

        // Registrar apenas requisições com duração longa ou erros
        elapsed := time.Since(start)
        if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
            log.Printf(
                "%s %s %s %d %v",
                r.Method,
                r.RequestURI,
                r.RemoteAddr,
                wrapper.status,
                elapsed,
            )
        }
    })
}

func main() {
    log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

    cfg := config.Load()
    if err := cfg.Validate(); err != nil {
        log.Fatalf("Configuration error: %v", err)
    }
    log.Printf("Configuration loaded successfully (provider: %s)", cfg.Payment.Provider)

    // Conectar ao Redis com retry
    var kv *store.RedisKV
    var err error
    for retries := 0; retries < 5; retries++ {
        kv, err = store.NewRedisKV(cfg.Redis.URL)
        if err == nil {
            break
        }
        retryDelay := time.Duration(retries+1) * time.Second
        log.Printf("Failed to connect to Redis (attempt %d/5): %v. Retrying in %v...",
            retries+1, err, retryDelay)
        time.Sleep(retryDelay)
    }
    if err != nil {
        log.Fatalf("Failed to connect to Redis after retries: %v", err)
    }
    defer kv.Close()
    log.Println("Successfully connected to Redis")

    // Killswitch carregado da persistência; ausente, checkout habilitado
    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    ks, err := killswitch.New(ctx, kv)
    cancel()
    if err != nil {
        log.Fatalf("Failed to initialize killswitch: %v", err)
    }

    // Serviços
    paymentService, err := payment.NewService(cfg.Payment)
    if err != nil {
        log.Fatalf("Failed to initialize payment service: %v", err)
    }
    panelTokens := auth.NewPanelTokenService(cfg.Admin.PanelTokenSecret, "cacamba-payment-api")

    engine := checkout.NewEngine(paymentService, ks)
    defer engine.Shutdown()

    // Handlers
    pixHandler, err := handlers.NewPixHandler(paymentService)
    if err != nil {
        log.Fatalf("Failed to initialize pix handler: %v", err)
    }
    checkoutHandler, err := handlers.NewCheckoutHandler(engine)
    if err != nil {
        log.Fatalf("Failed to initialize checkout handler: %v", err)
    }
    adminHandler, err := handlers.NewAdminHandler(ks, panelTokens, cfg.Admin.SessionKey,
        cfg.Admin.KnockThreshold, time.Duration(cfg.Admin.KnockWindowMs)*time.Millisecond)
    if err != nil {
        log.Fatalf("Failed to initialize admin handler: %v", err)
    }
    productHandler := handlers.NewProductHandler()

    rateLimiter := middleware.NewRateLimiter(kv.Client())

    router := mux.NewRouter()
    router.Use(corsMiddleware(cfg.Server.AllowedOrigin))
    router.Use(loggingMiddleware)
    router.Use(rateLimiter.RateLimitMiddleware())

    api := router.PathPrefix("/api").Subrouter()

    // Catálogo
    api.HandleFunc("/products", productHandler.GetProducts).Methods("GET", "OPTIONS")

    // Proxy PIX (mesmo contrato da função serverless original)
    api.HandleFunc("/pix/payments", pixHandler.CreatePayment).Methods("POST", "OPTIONS")
    api.HandleFunc("/pix/status", pixHandler.CheckStatus).Methods("POST", "OPTIONS")

    // Sessões de checkout com polling do lado do servidor
    api.HandleFunc("/checkout", checkoutHandler.CreateCheckout).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/{id}", checkoutHandler.GetCheckout).Methods("GET", "OPTIONS")
    api.HandleFunc("/checkout/{id}", checkoutHandler.CloseCheckout).Methods("DELETE", "OPTIONS")
    api.HandleFunc("/checkout/{id}/receipt", checkoutHandler.DownloadReceipt).Methods("GET", "OPTIONS")

    // Painel administrativo atrás do gesto secreto
    api.HandleFunc("/admin/knock", adminHandler.Knock).Methods("POST", "OPTIONS")

    adminRouter := api.PathPrefix("/admin").Subrouter()
    adminRouter.Use(middleware.PanelAuthMiddleware(panelTokens))
    adminRouter.HandleFunc("/panel", adminHandler.GetPanel).Methods("GET", "OPTIONS")
    adminRouter.HandleFunc("/killswitch", adminHandler.ToggleKillswitch).Methods("POST", "OPTIONS")

    // Registrar hora de início para cálculo de uptime
    startTime := time.Now()

    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
        defer cancel()

        health := struct {
            Status    string `json:"status"`
            Time      string `json:"time"`
            Redis     string `json:"redis"`
            Provider  string `json:"provider"`
            Uptime    string `json:"uptime"`
            GoVersion string `json:"go_version"`
        }{
            Status:    "ok",
            Time:      time.Now().Format(time.RFC3339),
            Redis:     "connected",
            Provider:  cfg.Payment.Provider,
            Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
            GoVersion: runtime.Version(),
        }

        redisCtx, redisCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer redisCancel()

        if err := kv.Client().Ping(redisCtx).Err(); err != nil {
            health.Status = "degraded"
            health.Redis = "error"
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(health)
    }).Methods("GET")

    srv := &http.Server{
        Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
        Handler:        router,
        ReadTimeout:    15 * time.Second,
        WriteTimeout:   30 * time.Second,
        IdleTimeout:    120 * time.Second,
        MaxHeaderBytes: 1 << 20,
    }

    go func() {
        log.Printf("Server starting on port %s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server error: %v", err)
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

    <-stop
    log.Println("Shutdown signal received, gracefully shutting down...")

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer shutdownCancel()

    log.Println("Shutting down HTTP server...")
    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Stopping checkout pollers...")
    engine.Shutdown()

    log.Println("Closing Redis connections...")
    kv.Close()

    log.Println("Server exited properly")
}
