// Package controller holds the helpers shared by the user and admin controllers
// and the development token endpoint.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/internal/apperror"
	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/rs/zerolog/log"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindInvalidState:
		return http.StatusBadRequest
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes {"error": ...}. Internal errors are logged and hidden from the client.
func RespondError(ctx *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		msg = "internal server error"
	}
	ctx.JSON(status, dto.ErrorResponse{Error: msg})
}

// BindError reports a request that failed binding or validation.
func BindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Invalid request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperror.Validation("invalid %s", name)
	}
	return uint(v), nil
}
