package auth

import (
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// PanelTokenDuration limita por quanto tempo o painel administrativo fica
// acessível depois do gesto secreto.
const PanelTokenDuration = 15 * time.Minute

var (
    ErrTokenExpired = errors.New("token expired")
    ErrInvalidToken = errors.New("invalid token")
)

// PanelTokenService emite e valida os tokens de curta duração que
// protegem o toggle do killswitch.
type PanelTokenService struct {
    secretKey []byte
    issuer    string
}

type panelClaims struct {
    Purpose string `json:"purpose"`
    jwt.RegisteredClaims
}

func NewPanelTokenService(secretKey, issuer string) *PanelTokenService {
    return &PanelTokenService{
        secretKey: []byte(secretKey),
        issuer:    issuer,
    }
}

// IssuePanelToken gera um token HS256 válido por PanelTokenDuration.
func (s *PanelTokenService) IssuePanelToken() (string, time.Time, error) {
    now := time.Now()
    expiresAt := now.Add(PanelTokenDuration)

    claims := panelClaims{
        Purpose: "admin_panel",
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    s.issuer,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(expiresAt),
            NotBefore: jwt.NewNumericDate(now),
        },
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := token.SignedString(s.secretKey)
    if err != nil {
        return "", time.Time{}, fmt.Errorf("error signing panel token: %v", err)
    }
    return signed, expiresAt, nil
}

// ValidatePanelToken confirma assinatura, validade e propósito.
func (s *PanelTokenService) ValidatePanelToken(tokenString string) error {
    token, err := jwt.ParseWithClaims(tokenString, &panelClaims{}, func(token *jwt.Token) (interface{}, error) {
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
        }
        return s.secretKey, nil
    })

    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return ErrTokenExpired
        }
        return ErrInvalidToken
    }

    claims, ok := token.Claims.(*panelClaims)
    if !ok || !token.Valid || claims.Purpose != "admin_panel" {
        return ErrInvalidToken
    }
    return nil
}
