package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	pkghttp "roundtable/internal/pkg/http"
	"roundtable/internal/service"
)

// BadRequest 请求体无法解析
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, pkghttp.NewErrorResponse(pkghttp.CodeInvalidRequest, "Invalid request body", err.Error()))
}

// Error 将 service 层错误映射为 HTTP 状态码和错误码
func Error(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, pkghttp.CodeInternal
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		status, code = http.StatusBadRequest, pkghttp.CodeInvalidArgument
	case errors.Is(err, service.ErrUnknownModel):
		status, code = http.StatusBadRequest, pkghttp.CodeUnknownModel
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, pkghttp.CodeNotFound
	case errors.Is(err, service.ErrUnavailable):
		status, code = http.StatusServiceUnavailable, pkghttp.CodeUnavailable
	case errors.Is(err, service.ErrUpstream):
		status, code = http.StatusInternalServerError, pkghttp.CodeUpstream
	default:
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}
	c.JSON(status, pkghttp.NewErrorResponse(code, http.StatusText(status), err.Error()))
}
