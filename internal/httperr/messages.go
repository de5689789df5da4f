package httperr

var messages = map[string]string{
	"internal_error":          "Something went wrong. Please try again later.",
	"invalid_request":         "The request is invalid.",
	"invalid_id":              "Invalid identifier.",
	"unauthenticated":         "Authentication required.",
	"invalid_token":           "Invalid or expired token.",
	"forbidden":               "You are not allowed to perform this action.",
	"requester_required":      "Sign in or provide your name, email and phone.",
	"invalid_date":            "Invalid date.",
	"invalid_date_or_time":    "Invalid date or time.",
	"booking_in_past":         "The selected time is in the past.",
	"booking_too_far":         "Bookings can only be made up to 90 days ahead.",
	"booking_not_found":       "Booking not found.",
	"branch_not_found":        "Branch not found.",
	"service_not_found":       "Service not found.",
	"staff_not_in_branch":     "The selected staff member does not work at this branch.",
	"invalid_promotion":       "The promotion code is not valid.",
	"time_slot_unavailable":   "The selected time slot is no longer available.",
	"invalid_state":           "The booking cannot change to the requested state.",
	"reason_required":         "A cancellation reason is required.",
	"booking_not_payable":     "The booking cannot be paid.",
	"invalid_amount":          "Invalid amount.",
	"payment_not_found":       "Payment not found.",
	"payment_not_refundable":  "Only completed payments can be refunded.",
	"booking_not_completed":   "Only completed bookings can be reviewed.",
	"review_already_exists":   "This booking has already been reviewed.",
	"invalid_rating":          "Rating must be between 1 and 5.",
	"session_not_found":       "Chat session not found.",
	"empty_message":           "Message must not be empty.",
	"invalid_email_domain":    "The email domain does not look valid.",
	"user_not_found":          "User not found.",
	"invalid_password":        "Current password is incorrect.",
	"invalid_image":           "The uploaded file is not a supported image.",
	"storage_not_configured":  "File storage is not configured.",
	"invalid_signature":       "Invalid signature.",
	"invalid_merchant":        "Invalid merchant.",
	"payment_failed":          "Payment was not successful.",
	"transaction_not_found":   "Transaction not found.",
	"lock_not_acquired":       "The resource is busy, please retry.",
	"duplicate_transaction":   "The transaction reference already exists.",
	"contact_message_invalid": "Please fill in all contact fields.",
}

// Message returns the human readable text for a machine code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
