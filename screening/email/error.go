package email

import (
	"net/http"

	"github.com/talentsift/screening/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EMAIL")

var (
	CodeInvalidRecipient = ErrRegistry.Register("INVALID_RECIPIENT", errx.TypeValidation, http.StatusBadRequest, "Invalid recipient email address")
	CodeUnknownTemplate  = ErrRegistry.Register("UNKNOWN_TEMPLATE", errx.TypeValidation, http.StatusBadRequest, "Unknown email template")
	CodeNotConfigured    = ErrRegistry.Register("NOT_CONFIGURED", errx.TypeBusiness, http.StatusServiceUnavailable, "Email delivery is not configured")
	CodeSendFailed       = ErrRegistry.Register("SEND_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to send email")
	CodeNoRecipients     = ErrRegistry.Register("NO_RECIPIENTS", errx.TypeBusiness, http.StatusUnprocessableEntity, "No candidates to email")
)

// Helper functions
func ErrInvalidRecipient() *errx.Error {
	return ErrRegistry.New(CodeInvalidRecipient)
}

func ErrUnknownTemplate() *errx.Error {
	return ErrRegistry.New(CodeUnknownTemplate)
}

func ErrNotConfigured() *errx.Error {
	return ErrRegistry.New(CodeNotConfigured)
}

func ErrSendFailed() *errx.Error {
	return ErrRegistry.New(CodeSendFailed)
}

func ErrNoRecipients() *errx.Error {
	return ErrRegistry.New(CodeNoRecipients)
}
