package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partymoa/partymoa-server/pkg/apperr"
	"github.com/partymoa/partymoa-server/pkg/response"
)

// httpStatus maps error kinds to protocol status codes. This is the only
// place the core's taxonomy meets HTTP.
func httpStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	response.Error[any](c, httpStatus(err), apperr.MessageOf(err), nil)
}
