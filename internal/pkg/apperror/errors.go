package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInvalidState  ErrorCode = "INVALID_STATE"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал с сентинелами.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или INTERNAL_ERROR для неизвестных ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeConflict
}

func IsInvalidState(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeInvalidState
}

var (
	ErrEventNotFound        = New(ErrCodeNotFound, "evento não encontrado")
	ErrProposalNotFound     = New(ErrCodeNotFound, "proposta não encontrada")
	ErrProfileNotFound      = New(ErrCodeNotFound, "perfil profissional não encontrado")
	ErrNotificationNotFound = New(ErrCodeNotFound, "notificação não encontrada")
	ErrUnauthorized         = New(ErrCodeUnauthorized, "autenticação necessária")
	ErrForbidden            = New(ErrCodeForbidden, "permissão insuficiente")
	ErrDuplicateProposal    = New(ErrCodeConflict, "você já enviou uma proposta para este evento")
	ErrDuplicateReview      = New(ErrCodeConflict, "este evento já foi avaliado")
	ErrEventAlreadyClosed   = New(ErrCodeConflict, "o evento já foi encerrado ou cancelado")
	ErrEventNotOpen         = New(ErrCodeInvalidState, "o evento não está aberto para propostas")
	ErrProposalUnavailable  = New(ErrCodeInvalidState, "esta proposta não está mais disponível")
)
