package response

const (
	// MessageSuccess is the message body for successful responses.
	MessageSuccess = "Success"

	// InternalServerErrorCode is the error_code for unexpected failures.
	InternalServerErrorCode = 500

	// DefaultErrorMessage hides internal details from API consumers.
	DefaultErrorMessage = "Something went wrong"

	// MessageRateLimited is the body for throttled requests.
	MessageRateLimited = "Too many requests, slow down."
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)
