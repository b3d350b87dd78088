package scheduling

import (
	"context"
	"fmt"
	"math"

	"medibook/utils"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// CreatePaymentIntent starts an online payment for a booked appointment and
// returns the Stripe client secret. Confirmation arrives through the gateway
// callback, which calls MarkAppointmentPaid.
func (s *DefaultSchedulingService) CreatePaymentIntent(ctx context.Context, appointmentID, patientID string) (string, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return "", err
	}
	if appt.PatientID != patientID {
		return "", NewSchedulingError(CodeUnauthorized, "appointment belongs to another patient")
	}
	if appt.Cancelled {
		return "", NewSchedulingError(CodeInvalidStateTransition, "cancelled appointment cannot be paid")
	}
	if appt.Payment {
		return "", NewSchedulingError(CodeInvalidStateTransition, "appointment is already paid")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(appt.Amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("appointmentId", appt.ID)
	params.AddMetadata("doctorId", appt.DoctorID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("appointmentId", appt.ID),
		zap.String("paymentIntentId", pi.ID))
	return pi.ClientSecret, nil
}
