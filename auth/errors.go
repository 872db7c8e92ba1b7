package auth

import "errors"

// Hard user errors. These cross the gateway boundary verbatim; everything
// else degrades into a RequiresDemoMode suggestion or is self-healed.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password. Please check your credentials.")
	ErrEmailNotVerified   = errors.New("Email not verified. Please check your email for verification link.")

	// The demo credential set is publicly documented, so the mismatch
	// message carries the fixed password hint instead of a generic error.
	ErrIncorrectDemoPassword = errors.New("Incorrect password for demo account. Please use: Demo123!")

	ErrReservedDemoEmail = errors.New("This email is reserved for demo accounts. Please use the Sign In tab with password: Demo123!")

	ErrDuplicateAccount = errors.New("An account with this email already exists. Please use the Sign In tab or try a different email address.")

	ErrRegistrationDisabled = errors.New("Account registration is currently unavailable. Please use demo accounts for offline access.")

	// Registration has no offline fallback: a new identity cannot be
	// fabricated locally, it must eventually sync to the real system.
	ErrRegistrationOffline = errors.New("Unable to connect to registration servers. Please check your internet connection and try again, or use demo accounts for offline access.")

	ErrRegistrationNetwork = errors.New("Network connection failed. Please check your internet connection and try again.")

	ErrInvalidSignUpInput = errors.New("invalid sign-up input")
)
