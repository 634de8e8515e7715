// Package server assembles the Gatehouse HTTP server: the router, the
// storage layer, the token and access services, and the authentication and
// permission middleware.
package server
