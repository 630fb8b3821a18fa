package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/requestdata"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps a service error onto the wire envelope. Unknown errors
// become a plain 500 without leaking internals.
func RespondError(c *gin.Context, err error) {
	e := apierr.From(err)
	msg := e.Error()
	if e.Status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(e.Status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    e.Code,
			Fields:  e.Fields,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// actor returns the authenticated request data; handlers behind RequireAuth
// can rely on it being present.
func actor(c *gin.Context) (*requestdata.RequestData, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Request is not authorized"})
		return nil, false
	}
	return rd, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, apierr.Validation("Invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
