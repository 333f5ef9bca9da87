// Package domain defines the core business entities, value objects, and errors.
package domain
