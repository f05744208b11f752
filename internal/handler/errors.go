package handler

import (
	"errors"
	"net/http"

	"vacationhub/internal/service"
	"vacationhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps the service sentinel errors onto HTTP statuses. Anything
// unrecognized is reported as a 500 with a generic message so internal
// details never leak to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}
