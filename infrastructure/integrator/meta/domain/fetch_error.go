package metadomain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorClass classifica uma falha de chamada à Graph API
type ErrorClass string

const (
	// ErrClassAuth indica credencial inválida ou expirada, nunca repetida
	ErrClassAuth ErrorClass = "AUTH"
	// ErrClassRateLimited indica limite de chamadas atingido, repetida com espera
	ErrClassRateLimited ErrorClass = "RATE_LIMITED"
	// ErrClassTransient indica falha de rede ou erro 5xx, repetida com backoff
	ErrClassTransient ErrorClass = "TRANSIENT"
	// ErrClassPermanent indica erro semântico que repetir não resolve
	ErrClassPermanent ErrorClass = "PERMANENT"
)

// FetchError é uma falha classificada de chamada à Graph API
type FetchError struct {
	Class       ErrorClass
	StatusCode  int
	Code        int
	Subcode     int
	Message     string
	RetryAfter  time.Duration
	AppThrottle bool
}

func (e *FetchError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("graph api: %s (classe %s, http %d, código %d)", e.Message, e.Class, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("graph api: %s (classe %s, http %d)", e.Message, e.Class, e.StatusCode)
}

// Retryable indica se vale a pena repetir a chamada
func (e *FetchError) Retryable() bool {
	return e.Class == ErrClassRateLimited || e.Class == ErrClassTransient
}

// ClassOf devolve a classe de um erro de busca, PERMANENT quando não classificado
func ClassOf(err error) ErrorClass {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Class
	}
	return ErrClassPermanent
}

// IsAuthError verifica se o erro é de credencial inválida
func IsAuthError(err error) bool {
	return ClassOf(err) == ErrClassAuth
}

// IsRateLimited verifica se o erro é de limite de chamadas
func IsRateLimited(err error) bool {
	return ClassOf(err) == ErrClassRateLimited
}
