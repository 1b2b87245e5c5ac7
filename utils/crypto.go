package utils

import (
    "crypto/rand"
    "fmt"
    "math/big"
)

const receiptCodeLength = 8

// GenerateReceiptCode gera o token de 8 caracteres impresso no comprovante.
func GenerateReceiptCode() string {
    const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
    result := make([]byte, receiptCodeLength)
    for i := range result {
        n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
        result[i] = charset[n.Int64()]
    }
    return string(result)
}

// GenerateProductReference gera o número de referência de 5 dígitos com
// zeros à esquerda.
func GenerateProductReference() string {
    n, _ := rand.Int(rand.Reader, big.NewInt(100000))
    return fmt.Sprintf("%05d", n.Int64())
}
