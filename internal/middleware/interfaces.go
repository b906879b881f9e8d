package middleware

//go:generate mockgen -source=interfaces.go -destination=../mock/observer_mock.go -package=mock

import "time"

// Observer receives request metrics from the request logger.
type Observer interface {
	// Started is called when a request enters the pipeline.
	Started()

	// Observe is called once per request after the final response was sent.
	// route is the matched route pattern, empty when none matched.
	Observe(method, route string, status int, d time.Duration, size int)
}
