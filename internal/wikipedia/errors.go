package wikipedia

import "fmt"

// NetworkError means the API endpoint could not be reached at all after
// every attempt was used up.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("wikipedia: network error: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RetrievalError means the endpoint answered but the answer was unusable:
// a server error, an empty body, malformed JSON, or an API-level error.
type RetrievalError struct {
	URL    string
	Status int
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("wikipedia: retrieval error: %s (http %d): %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("wikipedia: retrieval error: %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
