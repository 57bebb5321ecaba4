package domain

import "time"

// Credential é o estado da credencial de acesso à Graph API.
// O sistema nunca a altera: a validade informada serve apenas para avisar
// o operador, a recusa definitiva vem da própria API.
type Credential struct {
	Token     string
	IssuedAt  time.Time
	ValidDays int
}

// expiryWarningDays define com quantos dias restantes o aviso é emitido
const expiryWarningDays = 7

// ExpiresAt devolve a data estimada de expiração do token
func (c Credential) ExpiresAt() time.Time {
	return c.IssuedAt.AddDate(0, 0, c.ValidDays)
}

// DaysLeft devolve quantos dias inteiros restam de validade estimada
func (c Credential) DaysLeft(now time.Time) int {
	return int(c.ExpiresAt().Sub(now).Hours() / 24)
}

// ExpiresSoon indica se o token está perto de expirar e merece aviso
func (c Credential) ExpiresSoon(now time.Time) bool {
	if c.IssuedAt.IsZero() || c.ValidDays <= 0 {
		return false
	}
	return c.DaysLeft(now) <= expiryWarningDays
}
