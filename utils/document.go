package utils

// Validação e máscara de CPF/CNPJ. Os algoritmos de dígito verificador
// seguem a Receita Federal; funções totais, sem efeito colateral.

const (
    cpfLength  = 11
    cnpjLength = 14
)

var (
    cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
    cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// StripDocument remove tudo que não for dígito.
func StripDocument(raw string) string {
    out := make([]byte, 0, len(raw))
    for i := 0; i < len(raw); i++ {
        if raw[i] >= '0' && raw[i] <= '9' {
            out = append(out, raw[i])
        }
    }
    return string(out)
}

// IsValidDocument aceita CPF (11 dígitos) ou CNPJ (14 dígitos), com ou sem
// pontuação. Qualquer outro comprimento é inválido.
func IsValidDocument(raw string) bool {
    digits := StripDocument(raw)
    switch len(digits) {
    case cpfLength:
        return isValidCPF(digits)
    case cnpjLength:
        return isValidCNPJ(digits)
    default:
        return false
    }
}

func allDigitsEqual(digits string) bool {
    for i := 1; i < len(digits); i++ {
        if digits[i] != digits[0] {
            return false
        }
    }
    return true
}

func digitAt(digits string, i int) int {
    return int(digits[i] - '0')
}

func isValidCPF(digits string) bool {
    if allDigitsEqual(digits) {
        return false
    }

    sum := 0
    for i := 0; i < 9; i++ {
        sum += digitAt(digits, i) * (10 - i)
    }
    check := (sum * 10) % 11
    if check == 10 || check == 11 {
        check = 0
    }
    if check != digitAt(digits, 9) {
        return false
    }

    sum = 0
    for i := 0; i < 10; i++ {
        sum += digitAt(digits, i) * (11 - i)
    }
    check = (sum * 10) % 11
    if check == 10 || check == 11 {
        check = 0
    }
    return check == digitAt(digits, 10)
}

func cnpjCheckDigit(digits string, weights []int) int {
    sum := 0
    for i, w := range weights {
        sum += digitAt(digits, i) * w
    }
    remainder := sum % 11
    if remainder < 2 {
        return 0
    }
    return 11 - remainder
}

func isValidCNPJ(digits string) bool {
    if allDigitsEqual(digits) {
        return false
    }
    if cnpjCheckDigit(digits, cnpjWeights1) != digitAt(digits, 12) {
        return false
    }
    return cnpjCheckDigit(digits, cnpjWeights2) == digitAt(digits, 13)
}

// FormatDocument reaplica a máscara de CPF (000.000.000-00) ou CNPJ
// (00.000.000/0000-00) sobre os dígitos digitados até agora. Nunca rejeita;
// é recalculada por inteiro a cada tecla, não incrementalmente.
func FormatDocument(raw string) string {
    digits := StripDocument(raw)
    if len(digits) <= cpfLength {
        return applyMask(digits, "###.###.###-##")
    }
    if len(digits) > cnpjLength {
        digits = digits[:cnpjLength]
    }
    return applyMask(digits, "##.###.###/####-##")
}

// applyMask preenche os '#' com dígitos e só emite um separador quando
// ainda há dígito por colocar depois dele.
func applyMask(digits, mask string) string {
    out := make([]byte, 0, len(mask))
    pos := 0
    for i := 0; i < len(mask) && pos < len(digits); i++ {
        if mask[i] == '#' {
            out = append(out, digits[pos])
            pos++
            continue
        }
        out = append(out, mask[i])
    }
    return string(out)
}
