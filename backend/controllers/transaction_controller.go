package controllers

import (
	"errors"

	"lms/backend/config"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"gorm.io/gorm"
)

// defaultPaymentAmount is charged when the client sends no usable amount,
// mirroring the checkout flow's free-course floor of 50 cents.
const defaultPaymentAmount = 50

type TransactionController struct {
	Cfg       *config.Config
	Purchases *services.PurchaseService
}

func NewTransactionController(db *gorm.DB, cfg *config.Config) *TransactionController {
	return &TransactionController{
		Cfg:       cfg,
		Purchases: services.NewPurchaseService(db),
	}
}

func (tc *TransactionController) ListTransactions(c *fiber.Ctx) error {
	transactions, err := tc.Purchases.ListTransactions(c.Query("userId"))
	if err != nil {
		return utils.InternalServerError(c, "Error retrieving transactions")
	}
	return utils.OK(c, "Transactions retrieved successfully", transactions)
}

// CreateStripePaymentIntent asks Stripe for a PaymentIntent and returns its
// client secret. Payment confirmation itself happens on the client against
// Stripe; the backend only learns about it through CreateTransaction.
func (tc *TransactionController) CreateStripePaymentIntent(c *fiber.Ctx) error {
	var input struct {
		Amount int64 `json:"amount"` // cents
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount <= 0 {
		input.Amount = defaultPaymentAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return utils.InternalServerError(c, "Error creating stripe payment intent")
	}

	return utils.OK(c, "Payment intent created successfully", fiber.Map{
		"clientSecret": intent.ClientSecret,
	})
}

// CreateTransaction is the enrollment endpoint hit after a confirmed payment.
// A replayed confirmation for an already-recorded transaction id answers 409
// so the webhook delivery treats it as already processed.
func (tc *TransactionController) CreateTransaction(c *fiber.Ctx) error {
	var input services.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	result, err := tc.Purchases.CreateTransaction(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return utils.NotFound(c, "Course not found")
		case errors.Is(err, services.ErrDuplicateTransaction):
			return utils.Conflict(c, "Transaction already processed")
		case errors.Is(err, services.ErrAlreadyEnrolled):
			return utils.Conflict(c, "User is already enrolled in this course")
		case errors.Is(err, services.ErrInvalidPurchase):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalServerError(c, "Error creating transaction and enrollment")
		}
	}

	return utils.OK(c, "Course purchased successfully", result)
}
