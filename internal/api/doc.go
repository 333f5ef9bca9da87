// Package api implements the HTTP transport layer: request/response models,
// handlers for each resource, and the mapping from domain errors to HTTP
// status codes.
package api
