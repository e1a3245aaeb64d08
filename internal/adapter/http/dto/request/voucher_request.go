package request

// SetVoucherActiveRequest toggles a voucher. Active is a pointer so that an
// explicit false is told apart from a missing field.
type SetVoucherActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// RedeemVoucherRequest is the registration form filled by the attendee.
type RedeemVoucherRequest struct {
	RegistrationFormRequest
}
