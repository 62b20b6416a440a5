package apierrors

import (
	"errors"

	toolsProcessor "voice-bridge/internal/agenttools/processor"
	"voice-bridge/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

// RespondWithError maps a processor error to its HTTP response. Unknown
// errors become a sanitized 500.
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, processor.ErrCallNotFound):
		NotFound(c, "Call not found")
	case errors.Is(err, processor.ErrMissingPhoneNumber):
		BadRequest(c, CodeMissingPhoneNumber, "Phone number is required")
	case errors.Is(err, processor.ErrInvalidDirection):
		BadRequest(c, CodeInvalidDirection, "Invalid call direction")
	case errors.Is(err, processor.ErrCallPlacementFailed):
		ServiceUnavailable(c, CodeTelephonyUnavailable, "Telephony provider is temporarily unavailable. Please try again later.", err)

	// Agent tools
	case errors.Is(err, toolsProcessor.ErrMissingRecipient):
		BadRequest(c, CodeMissingPhoneNumber, "Recipient phone number is required")
	case errors.Is(err, toolsProcessor.ErrEmptyMessage):
		BadRequest(c, CodeInvalidInput, "Message is required")
	case errors.Is(err, toolsProcessor.ErrMessageFailed):
		ServiceUnavailable(c, CodeTelephonyUnavailable, "SMS could not be sent. Please try again later.", err)
	case errors.Is(err, toolsProcessor.ErrInvalidAmount):
		BadRequest(c, CodeInvalidAmount, "Amount must be a positive value")
	case errors.Is(err, toolsProcessor.ErrPaymentRejected):
		BadRequest(c, CodePaymentRejected, "Payment provider rejected the request")
	case errors.Is(err, toolsProcessor.ErrPaymentsDisabled):
		ServiceUnavailable(c, CodePaymentsUnavailable, "Payments are not configured for this environment", err)
	case errors.Is(err, toolsProcessor.ErrPaymentLinkFailed):
		ServiceUnavailable(c, CodePaymentsUnavailable, "Payment provider is temporarily unavailable. Please try again later.", err)
	case errors.Is(err, toolsProcessor.ErrUnknownPrompt):
		NotFound(c, "Prompt not found")
	default:
		InternalError(c, err)
	}
}
