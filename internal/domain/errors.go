package domain

import (
	"errors"
	"fmt"
)

// Erros fatais de uma execução de sincronização
var (
	// Erros de configuração
	ErrConfigConflict = errors.New("conflito de configuração")

	// Erros de credencial
	ErrCredentialInvalid = errors.New("credencial da Meta inválida ou expirada")

	// Erros de persistência
	ErrPersistFailure = errors.New("falha ao persistir relatório")

	// Erros de leitura
	ErrReportNotFound = errors.New("relatório não encontrado")

	// Erros de catálogo
	ErrNoPagesFound = errors.New("nenhuma página acessível encontrada")
)

// SyncError é um erro fatal de execução com contexto adicional
type SyncError struct {
	Err      error          // Erro base da taxonomia
	Identity ReportIdentity // Relatório envolvido (quando aplicável)
	Details  string         // Detalhes adicionais
}

// Error implementa a interface error
func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewConfigConflict cria um erro de seletores conflitantes
func NewConfigConflict(details string) *SyncError {
	return &SyncError{Err: ErrConfigConflict, Details: details}
}

// NewCredentialInvalid cria um erro de credencial rejeitada pela API
func NewCredentialInvalid(details string) *SyncError {
	return &SyncError{Err: ErrCredentialInvalid, Details: details}
}

// NewPersistFailure cria um erro de escrita do relatório
func NewPersistFailure(identity ReportIdentity, err error) *SyncError {
	return &SyncError{Err: ErrPersistFailure, Identity: identity, Details: err.Error()}
}

// NewReportNotFound cria um erro de relatório ausente no diretório
func NewReportNotFound(identity ReportIdentity) *SyncError {
	return &SyncError{
		Err:      ErrReportNotFound,
		Identity: identity,
		Details:  fmt.Sprintf("relatório %s não existe", identity.FileName()),
	}
}

// IsConfigConflict verifica se o erro é de seletores conflitantes
func IsConfigConflict(err error) bool {
	return errors.Is(err, ErrConfigConflict)
}

// IsCredentialInvalid verifica se o erro é de credencial rejeitada
func IsCredentialInvalid(err error) bool {
	return errors.Is(err, ErrCredentialInvalid)
}

// IsPersistFailure verifica se o erro é de persistência do relatório
func IsPersistFailure(err error) bool {
	return errors.Is(err, ErrPersistFailure)
}

// IsReportNotFound verifica se o erro é de relatório ausente
func IsReportNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound)
}
