package response

import (
	"errors"
	"net/http"

	appErr "rummy-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Msg  string      `json:"msg"`
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, "")
}

func Error(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{}, msg)
}

// Fail writes err with the status StatusOf picks for it.
func Fail(c *gin.Context, err error) {
	Error(c, StatusOf(err), err.Error())
}

// StatusOf maps domain errors to HTTP statuses. Unknown errors are 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, appErr.ErrInvalidCard),
		errors.Is(err, appErr.ErrDuplicateCard),
		errors.Is(err, appErr.ErrEmptyHand),
		errors.Is(err, appErr.ErrInvalidThreshold),
		errors.Is(err, appErr.ErrInvalidStrategy),
		errors.Is(err, appErr.ErrInvalidBatch):
		return http.StatusBadRequest
	case errors.Is(err, appErr.ErrHandTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, appErr.ErrLocationConflict):
		return http.StatusConflict
	case errors.Is(err, appErr.ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErr.ErrRoundNotTerminated), errors.Is(err, appErr.ErrMatchNotTerminated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func JSON(c *gin.Context, status int, data interface{}, msg string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Body{
		Code: status,
		Data: data,
		Msg:  msg,
	})
}
