package money

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
    assert.Equal(t, 260.00, Round(260.004))
    assert.Equal(t, 260.99, Round(260.988))
    assert.Equal(t, 520.00, Round(260.00*2))
}

func TestToCents(t *testing.T) {
    assert.Equal(t, int64(52000), ToCents(520.00))
    assert.Equal(t, int64(26000), ToCents(260.00))
    assert.Equal(t, int64(90000), ToCents(900.00))
}

func TestFormatBRL(t *testing.T) {
    assert.Equal(t, "260,00", FormatBRL(260))
    assert.Equal(t, "520,00", FormatBRL(260.00*2))
    assert.Equal(t, "R$ 900,00", FormatPriceBRL(900))
}

func TestParsePriceBRL(t *testing.T) {
    cases := map[string]float64{
        "R$ 260,00":   260.00,
        "R$ 1.260,50": 1260.50,
        "900,00":      900.00,
        "  R$ 340,00": 340.00,
    }
    for in, want := range cases {
        got, err := ParsePriceBRL(in)
        require.NoError(t, err, "input: %q", in)
        assert.Equal(t, want, got, "input: %q", in)
    }

    _, err := ParsePriceBRL("R$ abc")
    assert.Error(t, err)
}

func TestParseFormatRoundTrip(t *testing.T) {
    for _, price := range []float64{260, 290, 340, 380, 460, 900} {
        got, err := ParsePriceBRL(FormatPriceBRL(price))
        require.NoError(t, err)
        assert.Equal(t, price, got)
    }
}
