package repository

import "errors"

// ErrConnectivity is returned when no data store connection could be obtained:
// the store is unreachable, rejected the credentials, or the circuit breaker is open.
var ErrConnectivity = errors.New("data store unavailable")

// ErrQuery is returned when a query or row scan failed on an acquired connection.
var ErrQuery = errors.New("query failed")
