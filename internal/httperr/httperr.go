package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
)

func status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

func Write(c *gin.Context, status int, kind Kind, code string, details any) {
	httpresp.Fail(c, status, Message(code), httpresp.ErrorBody{
		Type:    string(kind),
		Code:    code,
		Details: details,
	})
}

func BadRequest(c *gin.Context, code string, details any) {
	Write(c, http.StatusBadRequest, KindValidation, code, details)
}

func NotFound(c *gin.Context, code string) {
	Write(c, http.StatusNotFound, KindNotFound, code, nil)
}

func Unauthorized(c *gin.Context, code string) {
	Write(c, http.StatusUnauthorized, KindUnauthorized, code, nil)
}

func Internal(c *gin.Context) {
	Write(c, http.StatusInternalServerError, "internal_error", "internal_error", nil)
}

// Respond maps a use case error onto the envelope. Errors that are not
// BusinessError are logged and hidden behind a generic 500.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	if be, ok := As(err); ok {
		Write(c, status(be.Kind), be.Kind, be.Code, be.Details)
		return
	}

	log.Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("trace_id", httpresp.TraceID(c)),
	)
	Internal(c)
}
