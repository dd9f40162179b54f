package service

import (
	"errors"
	"net/url"

	"vipgate/internal/models"
)

// PaymentPlan selects a checkout duration.
type PaymentPlan string

const (
	PlanMonthly PaymentPlan = "monthly"
	PlanAnnual  PaymentPlan = "annual"
)

// PaymentService builds checkout redirects for the external payment provider.
// The provider calls back into the VIP admin endpoints on settlement; no card
// data ever touches this service.
type PaymentService struct {
	checkoutBaseURL string
}

// NewPaymentService returns a new PaymentService.
func NewPaymentService(checkoutBaseURL string) *PaymentService {
	return &PaymentService{checkoutBaseURL: checkoutBaseURL}
}

// CheckoutURL returns the provider URL the client should be redirected to for
// the given plan, tagged with the purchasing user's email.
func (s *PaymentService) CheckoutURL(email string, plan PaymentPlan) (string, error) {
	if s.checkoutBaseURL == "" {
		return "", models.NewInternalError(errors.New("checkout base URL not configured"))
	}
	if plan != PlanMonthly && plan != PlanAnnual {
		return "", models.NewValidationError("Unknown payment plan")
	}

	u, err := url.Parse(s.checkoutBaseURL)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	q := u.Query()
	q.Set("plan", string(plan))
	q.Set("email", email)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
