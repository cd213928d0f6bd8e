// Package integration holds tests that run the services against real
// PostgreSQL and Redis containers. They skip when docker is unavailable.
package integration
