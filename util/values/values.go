package values

type ContextKey string

const (
	Success        = "success"
	Created        = "created"
	Error          = "internal-error"
	BadRequestBody = "bad-request-body"
	NotFound       = "not-found"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderRequestSource = "X-Request-Source"

	ContextTracingKey = ContextKey("tracing-context")
)
