package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredential_ExpiresSoon(t *testing.T) {
	now := time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		credential Credential
		expected   bool
	}{
		{
			name:       "Token emitido ontem com 60 dias de validade não expira em breve",
			credential: Credential{Token: "abc", IssuedAt: now.AddDate(0, 0, -1), ValidDays: 60},
			expected:   false,
		},
		{
			name:       "Token a cinco dias do vencimento expira em breve",
			credential: Credential{Token: "abc", IssuedAt: now.AddDate(0, 0, -55), ValidDays: 60},
			expected:   true,
		},
		{
			name:       "Token já vencido expira em breve",
			credential: Credential{Token: "abc", IssuedAt: now.AddDate(0, 0, -90), ValidDays: 60},
			expected:   true,
		},
		{
			name:       "Sem data de emissão não há como estimar",
			credential: Credential{Token: "abc", ValidDays: 60},
			expected:   false,
		},
		{
			name:       "Sem validade configurada não há como estimar",
			credential: Credential{Token: "abc", IssuedAt: now.AddDate(0, 0, -1)},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.credential.ExpiresSoon(now))
		})
	}
}

func TestCredential_DaysLeft(t *testing.T) {
	now := time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)
	credential := Credential{Token: "abc", IssuedAt: now.AddDate(0, 0, -50), ValidDays: 60}

	assert.Equal(t, 10, credential.DaysLeft(now))
}
