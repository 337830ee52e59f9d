package apierror

// Error type URIs following the urn:lumina:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:lumina:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:lumina:error:not_found"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:lumina:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:lumina:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:lumina:error:forbidden"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:lumina:error:internal"

	// TypeInvalidUUID indicates an invalid UUID format in request (400)
	TypeInvalidUUID = "urn:lumina:error:invalid_uuid"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:lumina:error:bad_request"

	// TypeEncryptionUnavailable indicates the user's encryption key could
	// not be initialized, so journal writes are refused rather than stored
	// as plaintext (503)
	TypeEncryptionUnavailable = "urn:lumina:error:encryption_unavailable"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation            = "Validation Error"
	TitleNotFound              = "Resource Not Found"
	TitleRateLimit             = "Rate Limit Exceeded"
	TitleUnauthorized          = "Authentication Required"
	TitleForbidden             = "Permission Denied"
	TitleInternal              = "Internal Server Error"
	TitleInvalidUUID           = "Invalid UUID Format"
	TitleBadRequest            = "Bad Request"
	TitleEncryptionUnavailable = "Encryption Unavailable"
)
