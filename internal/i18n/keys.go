// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthSessionExpired     = "auth.session_expired"
	KeyRateLimited            = "auth.rate_limited"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductSaveFailed = "product.save_failed"
	KeyProductDeleteFail = "product.delete_failed"
	KeyCategoryInvalid   = "category.invalid"
	KeySortInvalid       = "sort.invalid"

	// Compatible devices
	KeyDeviceConflict = "device.conflict"
	KeyDeviceAdded    = "device.added"
	KeyDeviceRemoved  = "device.removed"

	// Upstream
	KeyUpstreamUnavailable = "upstream.unavailable"
	KeySubscriptionsFailed = "subscriptions.failed"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Search
	KeySearchNoResults = "search.no_results"
)
