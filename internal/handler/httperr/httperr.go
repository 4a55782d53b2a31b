package httperr

import (
	"log/slog"
	"net/http"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// enough frames to locate the failing repository or use case
const stackLines = 12

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type ConflictDetail struct {
	RoomID int    `json:"room_id"`
	Date   string `json:"date"`
	Slot   string `json:"slot"`
	Reason string `json:"reason"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a use-case error onto its HTTP status by the kind it was marked
// with. Storage and unknown errors never expose their message.
func Abort(c *gin.Context, err error) {
	var conflictErr *booking.ConflictError
	switch {
	case errs.As(err, &conflictErr):
		AbortWithError(c, http.StatusConflict, err, "Selected slots are no longer available", conflictDetails(conflictErr))
	case errs.Is(err, errs.ErrConflict):
		AbortWithError(c, http.StatusConflict, err, rootMessage(err), nil)
	case errs.Is(err, errs.ErrValidation):
		AbortWithError(c, http.StatusBadRequest, err, rootMessage(err), nil)
	case errs.Is(err, errs.ErrUnauthorized):
		AbortWithError(c, http.StatusUnauthorized, err, "Unauthorized", nil)
	case errs.Is(err, errs.ErrNotFound):
		AbortWithError(c, http.StatusNotFound, err, rootMessage(err), nil)
	case errs.Is(err, errs.ErrPayment):
		AbortWithError(c, http.StatusPaymentRequired, err, "Payment could not be processed", nil)
	case errs.Is(err, errs.ErrStorageUnavailable):
		AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable, please retry", nil)
	default:
		slog.Error("unhandled error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, stackLines))
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func conflictDetails(e *booking.ConflictError) []ConflictDetail {
	out := make([]ConflictDetail, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		out = append(out, ConflictDetail{
			RoomID: c.RoomID,
			Date:   c.Date.String(),
			Slot:   c.Slot.String(),
			Reason: string(c.Reason),
		})
	}
	return out
}

// rootMessage drops wrapping context so clients see only the sentinel text.
func rootMessage(err error) string {
	return errs.UnwrapAll(err).Error()
}
