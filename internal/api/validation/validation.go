package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// emailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// telefoneRegex accepts E.164-ish numbers with optional + and separators
	telefoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{7,19}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidTelefone checks if the string looks like a phone number
func IsValidTelefone(telefone string) bool {
	return telefoneRegex.MatchString(telefone)
}

// IsValidCPF validates a Brazilian CPF, with or without punctuation,
// including both check digits.
func IsValidCPF(cpf string) bool {
	digits := onlyDigits(cpf)
	if len(digits) != 11 {
		return false
	}
	if allSame(digits) {
		return false
	}

	for _, pos := range []int{9, 10} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(digits[i]-'0') * (pos + 1 - i)
		}
		check := (sum * 10) % 11 % 10
		if check != int(digits[pos]-'0') {
			return false
		}
	}

	return true
}

// IsValidCNPJ validates a Brazilian CNPJ, with or without punctuation,
// including both check digits.
func IsValidCNPJ(cnpj string) bool {
	digits := onlyDigits(cnpj)
	if len(digits) != 14 {
		return false
	}
	if allSame(digits) {
		return false
	}

	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for _, pos := range []int{12, 13} {
		sum := 0
		offset := len(weights) - pos
		for i := 0; i < pos; i++ {
			sum += int(digits[i]-'0') * weights[offset+i]
		}
		check := sum % 11
		if check < 2 {
			check = 0
		} else {
			check = 11 - check
		}
		if check != int(digits[pos]-'0') {
			return false
		}
	}

	return true
}

// IsValidSenha checks password strength
func IsValidSenha(senha string) (bool, string) {
	if len(senha) < 8 {
		return false, "Senha deve ter pelo menos 8 caracteres"
	}
	if len(senha) > 128 {
		return false, "Senha deve ter no máximo 128 caracteres"
	}
	return true, ""
}

// SanitizeString removes potentially dangerous characters for display
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	// Remove control characters except newlines and tabs
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
