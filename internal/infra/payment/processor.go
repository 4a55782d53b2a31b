package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errs.New("payment amount must be positive")

// StubProcessor issues local intents without contacting a gateway.
type StubProcessor struct {
	now func() time.Time
}

func NewStubProcessor() *StubProcessor {
	return &StubProcessor{now: time.Now}
}

func (p *StubProcessor) CreateIntent(_ context.Context, amount booking.Money, currency string, _ map[string]string) (*shared.PaymentIntent, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	reference := fmt.Sprintf("PAY-%d", p.now().UnixNano())
	secret := reference + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	return &shared.PaymentIntent{
		Reference:    reference,
		ClientSecret: secret,
		AmountCents:  amount.Cents(),
		Currency:     currency,
	}, nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected, err := hex.DecodeString(Sign(secret, body))
	if err != nil {
		return false
	}
	given, err := hex.DecodeString(strings.TrimPrefix(signature, "sha256="))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, given)
}
