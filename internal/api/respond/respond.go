// Package respond writes the {success, data, error, message} envelope every
// endpoint answers with.
package respond

import (
	"errors"
	"net/http"

	"unbelong-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data, "message": message})
}

func Updated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "message": message})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Fail maps err to its status. Store failures are logged and carry the
// underlying error text in "message" for diagnostics.
func Fail(c *gin.Context, log logrus.FieldLogger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Store("Internal Server Error", err)
	}

	body := gin.H{"success": false, "error": e.Message}
	if e.Kind == apperr.StoreFailure {
		if cause := errors.Unwrap(e); cause != nil {
			body["message"] = cause.Error()
		}
		if log != nil {
			log.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.FullPath(),
			}).WithError(err).Error(e.Message)
		}
	}
	c.AbortWithStatusJSON(e.Kind.Status(), body)
}
