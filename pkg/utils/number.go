package utils

import (
	"strconv"
	"strings"
)

// SafeInt64 converte valores heterogêneos da API em inteiro.
// A Graph API devolve métricas como número, string numérica ou, no caso das
// reações, como um mapa de tipo de reação para contagem, que é somado.
// Qualquer valor não interpretável vira zero.
func SafeInt64(v any) int64 {
	switch value := v.(type) {
	case int64:
		return value
	case int:
		return int64(value)
	case float64:
		return int64(value)
	case string:
		trimmed := strings.TrimSpace(value)
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int64(f)
		}
		return 0
	case map[string]any:
		var total int64
		for _, item := range value {
			total += SafeInt64(item)
		}
		return total
	default:
		return 0
	}
}
