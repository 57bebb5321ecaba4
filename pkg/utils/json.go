package utils

import (
	"bytes"
	"encoding/json"
)

// PrettyJson formata um payload para logs de depuração. Aceita o []byte cru
// da resposta ou qualquer valor serializável; entradas inválidas voltam como
// estão.
func PrettyJson(in any) string {
	buffer, ok := in.([]byte)
	if !ok {
		var err error
		buffer, err = json.Marshal(in)
		if err != nil {
			return ""
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "\t"); err != nil {
		return string(buffer)
	}

	return out.String()
}
