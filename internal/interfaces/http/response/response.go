package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/pkg/logger"
	"realty-crm.backend/pkg/utils"
)

// Envelope is the uniform JSON body of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError is the error half of the envelope
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// SuccessWithMeta sends a success envelope with pagination metadata
func SuccessWithMeta(c *gin.Context, status int, data interface{}, meta utils.PaginationMeta) {
	c.JSON(status, Envelope{Success: true, Data: data, Meta: meta})
}

// Error maps an error to the envelope. Anything that is not an AppError
// becomes a generic 500 so internals never leak to clients in
// production. Outside release mode the 500 body carries the underlying
// error detail so local debugging does not require log access.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", zap.Error(err))
		if gin.Mode() != gin.ReleaseMode && appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}

	c.JSON(appErr.Status, Envelope{
		Success: false,
		Error:   &APIError{Code: appErr.Code, Message: message},
	})
}

// ValidationError maps a gin binding error to a 400 envelope
func ValidationError(c *gin.Context, err error) {
	Error(c, domainerrors.BadRequest(err.Error()))
}

// AbortUnauthorized aborts the request with a 401 envelope. Used by
// middleware, which cannot rely on handler-level error returns.
func AbortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// AbortForbidden aborts the request with a 403 envelope
func AbortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{
		Success: false,
		Error:   &APIError{Code: domainerrors.CodeForbidden, Message: message},
	})
}
