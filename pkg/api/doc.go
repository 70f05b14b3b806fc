// Package api defines the request and response messages of the
// healthcoach.v1 RPC services. Messages are plain structs carried as JSON.
package api
