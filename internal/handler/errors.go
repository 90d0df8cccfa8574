package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waseem96525/GPStrackingapp/internal/model"
	"github.com/waseem96525/GPStrackingapp/internal/repository"
	"github.com/waseem96525/GPStrackingapp/internal/service"
)

// respondError maps the domain error taxonomy onto HTTP status codes. Every
// failure path gets a distinguishable kind; nothing collapses into a bare 500
// unless it really is unclassified.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnknownDevice):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Device not registered"})
	case errors.Is(err, repository.ErrDeviceExists):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: "Device already registered"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Not found"})
	case errors.Is(err, repository.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Error: "Store unavailable", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error", Message: err.Error()})
	}
}
