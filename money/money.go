package money

import (
    "fmt"
    "math"
    "strconv"
    "strings"
)

func Round(value float64) float64 {
    return math.Round(value*100) / 100
}

// ToCents converte reais para centavos. A conversão para unidade menor
// acontece exatamente uma vez, dentro do adaptador do provedor que cobra
// em centavos.
func ToCents(value float64) int64 {
    return int64(math.Round(value * 100))
}

// FormatBRL formata o valor no padrão brasileiro sem prefixo ("260,00").
func FormatBRL(value float64) string {
    return strings.Replace(strconv.FormatFloat(Round(value), 'f', 2, 64), ".", ",", 1)
}

// FormatPriceBRL inclui o prefixo de moeda ("R$ 260,00").
func FormatPriceBRL(value float64) string {
    return "R$ " + FormatBRL(value)
}

// ParsePriceBRL converte uma string de preço ("R$ 1.260,00") para número.
func ParsePriceBRL(price string) (float64, error) {
    s := strings.TrimSpace(price)
    s = strings.TrimPrefix(s, "R$")
    s = strings.ReplaceAll(s, ".", "")
    s = strings.Replace(s, ",", ".", 1)
    s = strings.TrimSpace(s)

    value, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return 0, fmt.Errorf("invalid price %q: %v", price, err)
    }
    return value, nil
}
