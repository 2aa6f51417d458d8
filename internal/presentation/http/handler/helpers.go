package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
)

// dateLayout is the wire format of calendar dates in queries and bodies.
const dateLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil
	}
	return &userID
}

// GetCurrentUser returns the authenticated operator, or nil when the request
// carries no valid token.
func GetCurrentUser(c *gin.Context) *service.CurrentUser {
	userID := GetUserID(c)
	if userID == nil {
		return nil
	}
	return &service.CurrentUser{
		ID:          *userID,
		Username:    c.GetString("user_name"),
		DisplayName: c.GetString("user_full_name"),
	}
}

// requireUserID writes a 401 and returns false when nobody is logged in.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return uuid.Nil, false
	}
	return *userID, true
}

// parseIDParam reads a UUID path parameter, answering 400 when malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "ID tidak valid")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads a YYYY-MM-DD value. Empty input yields nil.
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func invalidDate(field string) error {
	return apperror.NewValidationError([]apperror.FieldError{
		{Field: field, Message: "Format tanggal harus YYYY-MM-DD"},
	})
}
