package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Data tidak ditemukan"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Sesi berakhir. Silakan login kembali."}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Akses ditolak"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Permintaan tidak valid"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Terjadi kesalahan pada server"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Username atau password salah"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Token tidak valid"}
	ErrStorage            = &AppError{Code: http.StatusInternalServerError, Message: "Gagal menyimpan data. Silakan coba lagi."}

	// Receipt and export failures
	ErrPrintUnavailable  = &AppError{Code: http.StatusServiceUnavailable, Message: "Pencetakan tidak tersedia di perangkat ini."}
	ErrPrintFailed       = &AppError{Code: http.StatusBadGateway, Message: "Gagal mencetak struk. Silakan coba lagi."}
	ErrPrintTimeout      = &AppError{Code: http.StatusGatewayTimeout, Message: "Proses pencetakan timeout. Silakan coba lagi."}
	ErrPDFTimeout        = &AppError{Code: http.StatusGatewayTimeout, Message: "Proses pembuatan PDF timeout. Silakan coba lagi."}
	ErrPDFFailed         = &AppError{Code: http.StatusInternalServerError, Message: "Gagal membuat PDF. Silakan coba lagi."}
	ErrShareUnavailable  = &AppError{Code: http.StatusServiceUnavailable, Message: "Sharing tidak tersedia pada perangkat ini"}
	ErrNothingToExport   = &AppError{Code: http.StatusNotFound, Message: "Tidak ada transaksi untuk diekspor pada rentang tanggal yang dipilih."}
	ErrSettingsMissing   = &AppError{Code: http.StatusUnprocessableEntity, Message: "Data transaksi atau pengaturan tidak tersedia"}
	ErrTransactionSaving = &AppError{Code: http.StatusInternalServerError, Message: "Gagal menyimpan transaksi. Silakan coba lagi."}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error. The message of the first
// field error is used as the summary so clients can show a single line.
func NewValidationError(fieldErrors []FieldError) *AppError {
	message := "Validasi gagal"
	if len(fieldErrors) > 0 {
		message = fieldErrors[0].Message
	}
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " tidak ditemukan",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewStorageError wraps a persistence failure. Storage errors are surfaced
// with a generic message and are never retried automatically.
func NewStorageError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// NewConstructionError reports a receipt that could not be built from its inputs.
func NewConstructionError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *AppError, err error) *AppError {
	return &AppError{
		Code:    base.Code,
		Message: base.Message,
		Errors:  base.Errors,
		Err:     err,
	}
}

// Is matches AppErrors by status code and message so wrapped copies of the
// sentinel errors compare equal to them.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: ErrInternalServer.Message,
		Err:     err,
	}
}
