package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

var kindToStatus = map[models.ErrorKind]int{
	models.ErrorKindValidation:     http.StatusBadRequest,
	models.ErrorKindAuthentication: http.StatusUnauthorized,
	models.ErrorKindAuthorization:  http.StatusForbidden,
	models.ErrorKindNotFound:       http.StatusNotFound,
	models.ErrorKindConflict:       http.StatusConflict,
	models.ErrorKindTerminalState:  http.StatusConflict,
	models.ErrorKindVerification:   http.StatusUnprocessableEntity,
	models.ErrorKindFraudBlock:     http.StatusForbidden,
	models.ErrorKindInternal:       http.StatusInternalServerError,
}

// writeError maps a pipeline error kind onto an HTTP status. Internal
// details never leave the process; clients get the kind and the message.
func writeError(c *gin.Context, err error) {
	kind := models.KindOf(err)
	status, ok := kindToStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if kind == models.ErrorKindInternal {
		log.WithError(err).Error("[API] Internal error")
		message = "internal error"
	}

	c.JSON(status, gin.H{"error": message, "kind": string(kind)})
}
