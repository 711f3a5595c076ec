// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key and the request body
// limit. It is embedded by core/config and read by the serve command.
package server
