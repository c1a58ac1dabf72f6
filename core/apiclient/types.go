package apiclient

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record returned by GET /auth/me.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	Role               string    `json:"role,omitempty"`
	IsActive           bool      `json:"is_active"`
	IsVerified         bool      `json:"is_verified"`
	SubscriptionStatus *string   `json:"subscription_status,omitempty"`
	CoursesEnrolled    []string  `json:"courses_enrolled,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Token is the body of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

// Registration is the confirmation returned by POST /auth/register.
type Registration struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		UserID string `json:"user_id"`
	} `json:"data"`
}

// EmailCaptureRequest is the body of POST /email/capture.
type EmailCaptureRequest struct {
	Email             string `json:"email" validate:"required"`
	Source            string `json:"source"`
	NewsletterConsent bool   `json:"newsletter_consent"`
}

// EmailCaptureResponse is the body of a successful capture.
type EmailCaptureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Payment types understood by the checkout endpoint.
const (
	PaymentTypeCourse       = "course"
	PaymentTypeConsultation = "consultation"
)

// CheckoutRequest is the body of POST /payments/checkout/session.
type CheckoutRequest struct {
	PackageID   string `json:"package_id,omitempty"`
	PaymentType string `json:"payment_type" validate:"required;in:course,consultation"`
	ItemID      string `json:"item_id" validate:"required"`
}

// CheckoutSession is the handle returned for a new checkout.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id,omitempty"`
}

// StatusHealthy is the status reported by a healthy backend.
const StatusHealthy = "healthy"

// ServiceStatus is the body of GET /health.
type ServiceStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
