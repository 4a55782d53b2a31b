package api

import (
	"net/http"

	reqdto "medoffice-booking/internal/handler/dto/request"
	resdto "medoffice-booking/internal/handler/dto/response"
	"medoffice-booking/internal/handler/httperr"
	"medoffice-booking/internal/handler/middleware"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

type BookingHandler struct {
	cmds     commands.BookingCommands
	drafts   commands.DraftCommands
	pricing  queries.PricingQueries
	bookings queries.BookingQueries
	draftQ   queries.DraftQueries
}

func NewBookingHandler(
	cmds commands.BookingCommands,
	drafts commands.DraftCommands,
	pricing queries.PricingQueries,
	bookings queries.BookingQueries,
	draftQ queries.DraftQueries,
) *BookingHandler {
	return &BookingHandler{
		cmds:     cmds,
		drafts:   drafts,
		pricing:  pricing,
		bookings: bookings,
		draftQ:   draftQ,
	}
}

// @Summary Quote
// @Description Price breakdown for a set of selections; nothing is stored
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Selections"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	quote, err := h.pricing.Quote(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuote(*quote))
}

// @Summary Commit checkout
// @Description Re-checks every slot and creates pending bookings, all or nothing
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID; retries with the same key replay the result"
// @Param request body reqdto.CommitBookingRequest true "Checkout"
// @Success 201 {object} resdto.CommitResponse
// @Success 200 {object} resdto.CommitResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Commit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var idempotencyKey *uuid.UUID
	if raw := c.GetHeader(idempotencyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
			return
		}
		idempotencyKey = &key
	}

	var req reqdto.CommitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Commit(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCommitResult(result))
}

// @Summary Booking history
// @Description The user's bookings grouped by checkout, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max bookings to read"
// @Success 200 {array} resdto.CheckoutResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings/history [get]
func (h *BookingHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var q reqdto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	views, err := h.bookings.History(c.Request.Context(), userID, q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromCheckoutViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get draft
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DraftResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/draft [get]
func (h *BookingHandler) GetDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	draft, err := h.draftQ.Get(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraft(draft))
}

// @Summary Save draft
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SaveDraftRequest true "Draft"
// @Success 200 {object} resdto.DraftResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/draft [put]
func (h *BookingHandler) SaveDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), req, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraft(draft))
}

// @Summary Discard draft
// @Tags bookings
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /bookings/draft [delete]
func (h *BookingHandler) DiscardDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	if err := h.drafts.Discard(c.Request.Context(), userID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
