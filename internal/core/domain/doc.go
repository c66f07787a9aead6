// Package domain contains the core business entities and errors for Inkwell.
// It has no dependencies on adapters or infrastructure packages.
package domain
