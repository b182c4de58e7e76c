package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, errorResponse{Message: message})
}

func abortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// writeError maps use case errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrImmutableField):
		newErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStoreWrite):
		logrus.WithError(err).WithField("path", c.FullPath()).Error("order write failed")
		newErrorResponse(c, http.StatusServiceUnavailable, "order could not be saved, try again")
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
