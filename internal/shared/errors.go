package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthExchangeFailed = fmt.Errorf("authorization code exchange failed")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrRefreshFailed      = fmt.Errorf("token refresh failed")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Roast pipeline errors
	ErrProfileFetchFailed = fmt.Errorf("profile fetch failed")
	ErrInsufficientData   = fmt.Errorf("not enough music data")
	ErrRoastFailed        = fmt.Errorf("roast generation failed")
	ErrClientInit         = fmt.Errorf("completion client not initialized")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
