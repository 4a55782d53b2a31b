package api

import (
	"net/http"

	reqdto "medoffice-booking/internal/handler/dto/request"
	resdto "medoffice-booking/internal/handler/dto/response"
	"medoffice-booking/internal/handler/httperr"
	"medoffice-booking/internal/handler/middleware"
	"medoffice-booking/internal/infra/payment"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const signatureHeader = "X-Payment-Signature"

var errBadSignature = errs.New("invalid webhook signature")

type PaymentHandler struct {
	cmds          commands.PaymentCommands
	webhookSecret string
}

func NewPaymentHandler(cmds commands.PaymentCommands, cfg config.Config) *PaymentHandler {
	return &PaymentHandler{
		cmds:          cmds,
		webhookSecret: cfg.Payment.WebhookSecret,
	}
}

// @Summary Create payment intent
// @Description Quotes the selections server-side and opens a charge for the total
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Selections"
// @Success 201 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Router /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateIntent(c.Request.Context(), req, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPaymentIntentResult(result))
}

// @Summary Payment webhook
// @Description Processor callback moving pending bookings to confirmed or failed
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Payment-Signature header string true "hex HMAC-SHA256 of the body"
// @Param request body reqdto.PaymentWebhookRequest true "Event"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /webhooks/payment [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	if !payment.VerifySignature(h.webhookSecret, body, c.GetHeader(signatureHeader)) {
		httperr.AbortWithError(c, http.StatusUnauthorized, errBadSignature, "Invalid signature", nil)
		return
	}

	var req reqdto.PaymentWebhookRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.HandleWebhook(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}
