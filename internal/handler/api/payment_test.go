//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/handler/api"
	reqdto "medoffice-booking/internal/handler/dto/request"
	resdto "medoffice-booking/internal/handler/dto/response"
	"medoffice-booking/internal/infra/payment"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/shared"
	"medoffice-booking/tests/common/builder"
	"medoffice-booking/tests/common/httptest"
	commandsmock "medoffice-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockCmds *commandsmock.MockPaymentCommands
	secret   string
	userID   uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	cfg := config.NewTestConfig()
	s.secret = cfg.Payment.WebhookSecret
	s.userID = uuid.New()
	handler := api.NewPaymentHandler(s.mockCmds, cfg)

	s.router.POST("/payments/intent", func(c *gin.Context) {
		c.Set("user_id", s.userID)
		handler.CreateIntent(c)
	})
	s.router.POST("/webhooks/payment", handler.Webhook)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestCreateIntent() {
	reqBody := builder.NewBookingBuilder().BuildQuoteDTO()

	s.Run("success: returns 201 with the client secret", func() {
		s.mockCmds.EXPECT().CreateIntent(gomock.Any(), reqBody, s.userID).
			Return(&commands.PaymentIntentResult{
				Intent: &shared.PaymentIntent{Reference: "pi_1", ClientSecret: "pi_1_secret", AmountCents: 149200, Currency: "usd"},
				Quote:  defaultQuote(),
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/intent", reqBody, "")

		var response resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("pi_1", response.Reference)
		s.Equal(int64(149200), response.AmountCents)
		s.Equal(response.AmountCents, response.Quote.TotalCents)
	})

	s.Run("error: 402 when the processor rejects", func() {
		s.mockCmds.EXPECT().CreateIntent(gomock.Any(), reqBody, s.userID).
			Return(nil, errs.Mark(errs.New("card declined"), errs.ErrPayment)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/intent", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "Payment could not be processed")
	})
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	event := reqdto.PaymentWebhookRequest{
		Type:        reqdto.WebhookPaymentSucceeded,
		Reference:   "pi_1",
		UserID:      uuid.NewString(),
		AmountCents: 149200,
	}
	body, err := json.Marshal(event)
	s.Require().NoError(err)

	s.Run("success: applies a signed event", func() {
		ids := []uuid.UUID{uuid.New()}
		s.mockCmds.EXPECT().HandleWebhook(gomock.Any(), event).
			Return(&commands.WebhookResult{Handled: true, Status: booking.StatusConfirmed, BookingIDs: ids}, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/payment", body, map[string]string{
			"X-Payment-Signature": "sha256=" + payment.Sign(s.secret, body),
		})

		var response resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Received)
		s.Equal("confirmed", response.Status)
		s.Equal(ids, response.BookingIDs)
	})

	s.Run("success: acknowledges an event that matched nothing", func() {
		s.mockCmds.EXPECT().HandleWebhook(gomock.Any(), event).
			Return(&commands.WebhookResult{Handled: false}, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/payment", body, map[string]string{
			"X-Payment-Signature": payment.Sign(s.secret, body),
		})

		var response resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Received)
		s.Empty(response.Status)
	})

	s.Run("error: 401 on a bad signature", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/payment", body, map[string]string{
			"X-Payment-Signature": payment.Sign("another-secret", body),
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid signature")
	})

	s.Run("error: 401 without a signature", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/payment", body, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid signature")
	})

	s.Run("error: 400 on a signed but malformed event", func() {
		bad := []byte(`{"type":"payment_intent.succeeded"}`)
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/payment", bad, map[string]string{
			"X-Payment-Signature": payment.Sign(s.secret, bad),
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 when user_id is not an id", func() {
		bad := []byte(`{"type":"payment_intent.succeeded","reference":"pi_1","user_id":"someone"}`)
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/payment", bad, map[string]string{
			"X-Payment-Signature": payment.Sign(s.secret, bad),
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}
