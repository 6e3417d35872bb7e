// Package phone normaliza telefones de clientes. A comparação e o
// armazenamento usam sempre a forma normalizada (somente dígitos); a
// formatação visual é só apresentação e nunca entra em buscas.
package phone

import "strings"

// Normalize remove tudo que não é dígito.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// IsValid aceita telefone brasileiro com DDD: 11 dígitos.
func IsValid(normalized string) bool {
	if len(normalized) != 11 {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Format apresenta o telefone como (DD) 99999-9999. Entradas fora do
// padrão voltam como vieram.
func Format(normalized string) string {
	if !IsValid(normalized) {
		return normalized
	}

	return "(" + normalized[:2] + ") " + normalized[2:7] + "-" + normalized[7:]
}
