package values

type contextKey string

const (
	ContextTracingKey contextKey = "tracing"
	ContextUserKey    contextKey = "user"
)

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-ID"
)

// Response statuses. util.StatusCode maps each to an HTTP code.
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	BadRequestBody = "bad-request-body"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
	NotAllowed     = "not-allowed"
	NotFound       = "not-found"
	Conflict       = "conflict"
)

const SystemErr = "Something went wrong, please try again"
