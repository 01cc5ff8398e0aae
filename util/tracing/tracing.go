package tracing

// Context carries per-request identifiers through handler and helper
// layers for log correlation.
type Context struct {
	RequestID     string
	RequestSource string
}
