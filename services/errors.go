package services

// ServiceError is a typed error with an HTTP status code. Expected domain
// outcomes (throttling, declines, unresolved lookups) are structured
// responses, never panics.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }
