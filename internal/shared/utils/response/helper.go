package response

import (
	"log/slog"

	"opshub/internal/shared/apperrors"
	"opshub/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

func RespondSuccess(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, StatusSuccess, code, message, data, nil)
}

// RespondError writes err using its apperrors kind. Unclassified errors are
// logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	code := apperrors.HTTPStatus(kind)
	if kind == apperrors.KindInternal {
		logger.GetDefault().ErrorContext(c.Request.Context(), "Unhandled error",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	RespondJSON(c, StatusError, code, apperrors.PublicMessage(err), nil, nil)
}
