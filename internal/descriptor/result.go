package descriptor

// Result is the tagged outcome of a capability invocation. A handler either
// answers with a descriptor value or declines, meaning "no enrichment
// available, defer to the host's default rendering". Declining is normal
// control flow; invocation failures travel on the error return instead.
type Result struct {
	value    any
	answered bool
}

// Answer wraps a descriptor value in an answered Result.
func Answer(v any) Result {
	return Result{value: v, answered: true}
}

// Decline returns the "not handled" Result.
func Decline() Result {
	return Result{}
}

// Answered reports whether the handler produced a value.
func (r Result) Answered() bool {
	return r.answered
}

// Declined reports whether the handler deferred to the host.
func (r Result) Declined() bool {
	return !r.answered
}

// Value returns the wrapped descriptor value. It is nil for a declined
// Result.
func (r Result) Value() any {
	return r.value
}
