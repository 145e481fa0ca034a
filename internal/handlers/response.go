package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/middleware"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/sirupsen/logrus"
)

const msgInternalError = "Something went wrong. Please try again later."

// statusFor maps an error kind to its HTTP status. Conflicts are reported
// as 400 to keep the wire contract clients already depend on.
func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindBadRequest, models.KindConflict:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {success:false, message, code}. Internal
// failures are logged and replaced by a generic message.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternal(msgInternalError, err)
	}

	status := statusFor(appErr.Kind)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		message = msgInternalError
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"code":    appErr.Code,
	})
}

func respondInvalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request format",
		"code":    "INVALID_REQUEST",
		"error":   err.Error(),
	})
}

// currentUserID returns the authenticated caller. Routes using it sit
// behind AuthMiddleware.
func currentUserID(c *gin.Context) uuid.UUID {
	return middleware.MustGetUserContext(c).UserID
}
