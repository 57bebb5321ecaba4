package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRunID gera o identificador de uma execução de sincronização
func GenerateRunID() string {
	id, err := gonanoid.Generate(characters, 12)
	if err != nil {
		// gonanoid só falha se o alfabeto for inválido
		return "run-unknown"
	}
	return "run_" + id
}
