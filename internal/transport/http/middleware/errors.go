package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{Error: errorPayload{Code: code, Message: message, Details: details}}
}

// ErrorHandler maps domain errors collected via c.Error to status codes
// and stable machine-readable bodies. Internal details never reach the
// client; unexpected errors are logged and collapsed to a 500.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var wpe *customErrors.WeakPasswordError
		switch {
		case errors.As(err, &wpe):
			c.JSON(http.StatusBadRequest,
				NewErrorResponse("BAD_REQUEST", "Invalid password", wpe.Violations))
		case customErrors.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest,
				NewErrorResponse("BAD_REQUEST", err.Error(), nil))
		case customErrors.IsMissingToken(err):
			c.JSON(http.StatusUnauthorized,
				NewErrorResponse("UNAUTHORIZED", "Missing authorization header", nil))
		case customErrors.IsTokenExpired(err):
			c.JSON(http.StatusUnauthorized,
				NewErrorResponse("UNAUTHORIZED", "Token expired", nil))
		case customErrors.IsInvalidToken(err),
			customErrors.IsWrongTokenType(err),
			customErrors.IsWrongIssuer(err):
			c.JSON(http.StatusUnauthorized,
				NewErrorResponse("UNAUTHORIZED", "Invalid token", nil))
		case customErrors.IsInvalidCredentials(err):
			c.JSON(http.StatusUnauthorized,
				NewErrorResponse("UNAUTHORIZED", "Invalid email or password", nil))
		case customErrors.IsNotAuthenticated(err):
			c.JSON(http.StatusUnauthorized,
				NewErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		case customErrors.IsForbidden(err):
			c.JSON(http.StatusForbidden,
				NewErrorResponse("FORBIDDEN", "Insufficient permissions", nil))
		case customErrors.IsAlreadyExists(err):
			c.JSON(http.StatusConflict,
				NewErrorResponse("CONFLICT", "Email already registered", nil))
		case customErrors.IsNotFound(err):
			c.JSON(http.StatusNotFound,
				NewErrorResponse("NOT_FOUND", "Resource not found", nil))
		case customErrors.IsRateLimited(err):
			c.JSON(http.StatusTooManyRequests,
				NewErrorResponse("RATE_LIMIT_EXCEEDED", "Too many requests, please try again later", nil))
		default:
			log.Error("unhandled request error",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.JSON(http.StatusInternalServerError,
				NewErrorResponse("INTERNAL_ERROR", "An unexpected error occurred", nil))
		}
	}
}
