package errs

// Error kinds surfaced by the booking core. Use-case errors are marked onto
// one of these so the HTTP layer can map them without knowing the details.
var (
	ErrValidation         = New("validation error")
	ErrConflict           = New("slot conflict")
	ErrUnauthorized       = New("authorization error")
	ErrStorageUnavailable = New("storage unavailable")
	ErrPayment            = New("payment error")
	ErrNotFound           = New("not found")
)
