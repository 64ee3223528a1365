package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIncompleteAppointment), errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAppointment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvoiceAlreadyPaid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(errorStatus(err), gin.H{"error": err.Error()})
}
