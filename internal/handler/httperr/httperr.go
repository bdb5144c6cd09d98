package httperr

import (
	"net/http"

	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Stable error codes clients can switch on; messages may change.
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeRoomUnavailable   = "room_unavailable"
	CodeRoomTaken         = "room_taken"
	CodeInvalidTransition = "invalid_transition"
	CodeRateLimited       = "rate_limited"
	CodeInternal          = "internal_error"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithUsecaseError maps a usecase error category onto a status and code.
// Anything without a category is reported as an internal error without its message.
func AbortWithUsecaseError(c *gin.Context, err error) {
	status, code, msg := Classify(err)
	AbortWithError(c, status, err, code, msg, nil)
}

func Classify(err error) (status int, code, msg string) {
	switch {
	case errs.Is(err, commands.ErrRoomNoLongerAvailable):
		return http.StatusConflict, CodeRoomTaken, "Room was taken by another booking"
	case errs.Is(err, errs.ErrRoomUnavailable):
		return http.StatusConflict, CodeRoomUnavailable, "Room is not available"
	case errs.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition, err.Error()
	case errs.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity, CodeValidation, err.Error()
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, err.Error()
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, CodeForbidden, err.Error()
	default:
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}
}
