package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"stockkeeper/internal/domain"
)

// AppError é a interface central para todos os erros tipados do serviço.
// Ela permite que o Handler acesse a Categoria e o status HTTP do erro.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação (400).
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro 401.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem a permissão necessária.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return e.Msg }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro 403.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado (404).
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// MissingItemsError é a rejeição integral de um lote pela pré-verificação de
// existência. Details lista todas as entradas ofensoras, na ordem do lote.
type MissingItemsError struct {
	Msg     string
	Details []domain.MissingItemDetail
}

func (e *MissingItemsError) Error() string    { return e.Msg }
func (e *MissingItemsError) Category() string { return "NOT_FOUND" }
func (e *MissingItemsError) HTTPStatus() int  { return http.StatusNotFound }
func (e *MissingItemsError) Unwrap() error    { return nil }

// NewMissingItemsError cria a rejeição 404 de um lote.
func NewMissingItemsError(details []domain.MissingItemDetail) AppError {
	return &MissingItemsError{Msg: domain.MsgMissingItemsBatch, Details: details}
}

// ConflictError representa um conflito de estado (recurso duplicado, OCC).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return e.Msg }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito (409).
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Erros de Infraestrutura ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return e.Msg }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (500).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para InternalError de falhas no DB. A mensagem do
// backend é mantida porque o cliente a recebe no corpo do 500.
func NewDBError(msg string, err error) AppError {
	if err == nil {
		return NewInternalError(msg, nil)
	}
	return NewInternalError(fmt.Sprintf("%s: %s", msg, err.Error()), err)
}

// TimeoutError representa um lote ou consulta que estourou o prazo da requisição.
// É tratado como falha transitória: o cliente pode repetir.
type TimeoutError struct {
	Msg string
	Err error
}

func (e *TimeoutError) Error() string    { return e.Msg }
func (e *TimeoutError) Category() string { return "TIMEOUT" }
func (e *TimeoutError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *TimeoutError) Unwrap() error    { return e.Err }

// NewTimeoutError cria um erro de timeout (500, transitório).
func NewTimeoutError(msg string, err error) AppError {
	return &TimeoutError{Msg: msg, Err: err}
}

// StatusClientClosedRequest é o status (não padronizado) de uma requisição
// abandonada pelo cliente antes da resposta.
const StatusClientClosedRequest = 499

// CanceledError representa um lote interrompido porque o cliente desistiu.
type CanceledError struct {
	Msg string
	Err error
}

func (e *CanceledError) Error() string    { return e.Msg }
func (e *CanceledError) Category() string { return "CANCELED" }
func (e *CanceledError) HTTPStatus() int  { return StatusClientClosedRequest }
func (e *CanceledError) Unwrap() error    { return e.Err }

// NewCanceledError cria o erro de cancelamento pelo cliente (499).
func NewCanceledError(msg string, err error) AppError {
	return &CanceledError{Msg: msg, Err: err}
}

// IsTimeout informa se err vem de um prazo expirado.
func IsTimeout(err error) bool {
	return stderrors.Is(err, context.DeadlineExceeded)
}

// IsCanceled informa se err vem de um contexto cancelado.
func IsCanceled(err error) bool {
	return stderrors.Is(err, context.Canceled)
}

// --- Helper para o Handler ---

// MapToHTTPStatus traduz um erro para status HTTP, categoria e mensagem.
// Erros embrulhados com %w também são reconhecidos.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
