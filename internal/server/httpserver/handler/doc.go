// Package handler provides HTTP request handlers for the diagnostics server.
package handler
