package server

import "time"

// Status page responses are tiny; the timeouts only guard against stuck clients.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 2 * time.Minute
)

// shutdownTimeout bounds how long shutdown waits for servers, the poller and
// a running light sequence. A var so tests can shorten it.
var shutdownTimeout = 15 * time.Second
