package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/timbangcerdas/timbang-api/pkg/apperror"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := fmt.Errorf("export: %w", apperror.Wrap(apperror.ErrPDFTimeout, cause))

	if !errors.Is(err, apperror.ErrPDFTimeout) {
		t.Error("wrapped error does not match ErrPDFTimeout")
	}
	if errors.Is(err, apperror.ErrPDFFailed) {
		t.Error("wrapped timeout matches ErrPDFFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}

	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusGatewayTimeout {
		t.Errorf("Code = %d, want %d", appErr.Code, http.StatusGatewayTimeout)
	}
}

func TestGetAppErrorHidesInternalDetails(t *testing.T) {
	appErr := apperror.GetAppError(errors.New("pq: relation does not exist"))
	if appErr.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d", appErr.Code)
	}
	if appErr.Message != apperror.ErrInternalServer.Message {
		t.Errorf("Message = %q leaks the cause", appErr.Message)
	}
}

func TestNewValidationErrorSummary(t *testing.T) {
	err := apperror.NewValidationError([]apperror.FieldError{
		{Field: "item_type", Message: "Jenis barang harus diisi"},
		{Field: "customer_name", Message: "Nama customer harus diisi"},
	})
	if err.Message != "Jenis barang harus diisi" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != http.StatusUnprocessableEntity {
		t.Errorf("Code = %d", err.Code)
	}
}
