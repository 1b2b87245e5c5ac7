package config

import (
    "fmt"
    "log"
    "os"
    "strconv"

    "github.com/joho/godotenv"
)

type Config struct {
    Server  ServerConfig
    Redis   RedisConfig
    Payment PaymentConfig
    Admin   AdminConfig
}

type ServerConfig struct {
    Port          string
    AllowedOrigin string
}

type RedisConfig struct {
    URL string
}

// PaymentConfig seleciona o provedor PIX e guarda a credencial privada.
// A credencial nunca chega ao cliente.
type PaymentConfig struct {
    Provider       string // "risepay" ou "podpay"
    RisePayToken   string
    PodPayAPIKey   string
    RisePayBaseURL string
    PodPayBaseURL  string
}

type AdminConfig struct {
    SessionKey       string
    PanelTokenSecret string
    KnockThreshold   int
    KnockWindowMs    int
}

func Load() *Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    cfg := &Config{
        Server: ServerConfig{
            Port:          os.Getenv("SERVER_PORT"),
            AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
        },
        Redis: RedisConfig{
            URL: os.Getenv("REDIS_URL"),
        },
        Payment: PaymentConfig{
            Provider:       os.Getenv("PAYMENT_PROVIDER"),
            RisePayToken:   os.Getenv("RISEPAY_PRIVATE_TOKEN"),
            PodPayAPIKey:   os.Getenv("PODPAY_API_KEY"),
            RisePayBaseURL: os.Getenv("RISEPAY_BASE_URL"),
            PodPayBaseURL:  os.Getenv("PODPAY_BASE_URL"),
        },
        Admin: AdminConfig{
            SessionKey:       os.Getenv("ADMIN_SESSION_KEY"),
            PanelTokenSecret: os.Getenv("ADMIN_PANEL_SECRET"),
            KnockThreshold:   7,
            KnockWindowMs:    2000,
        },
    }

    if cfg.Server.Port == "" {
        cfg.Server.Port = "8080"
    }

    if cfg.Server.AllowedOrigin == "" {
        cfg.Server.AllowedOrigin = "*"
    }

    if cfg.Redis.URL == "" {
        cfg.Redis.URL = "redis://localhost:6379/0"
        log.Printf("Warning: REDIS_URL not set, using default: %s", cfg.Redis.URL)
    }

    if cfg.Payment.Provider == "" {
        cfg.Payment.Provider = "risepay"
    }

    if v := os.Getenv("ADMIN_KNOCK_THRESHOLD"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            cfg.Admin.KnockThreshold = n
        }
    }

    if v := os.Getenv("ADMIN_KNOCK_WINDOW_MS"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            cfg.Admin.KnockWindowMs = n
        }
    }

    return cfg
}

// Validate falha cedo quando a credencial do provedor selecionado está
// ausente. Erro de configuração, distinto de erro de pagamento.
func (c *Config) Validate() error {
    switch c.Payment.Provider {
    case "risepay":
        if c.Payment.RisePayToken == "" {
            return fmt.Errorf("RISEPAY_PRIVATE_TOKEN not configured")
        }
    case "podpay":
        if c.Payment.PodPayAPIKey == "" {
            return fmt.Errorf("PODPAY_API_KEY not configured")
        }
    default:
        return fmt.Errorf("unknown payment provider: %s", c.Payment.Provider)
    }

    if c.Admin.SessionKey == "" {
        return fmt.Errorf("ADMIN_SESSION_KEY not configured")
    }
    if c.Admin.PanelTokenSecret == "" {
        return fmt.Errorf("ADMIN_PANEL_SECRET not configured")
    }
    return nil
}
