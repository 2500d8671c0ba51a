// Package kernel contains shared value objects used across the fulfillment
// domain model: UUID identifiers and geographic points.
//
// Both types are immutable, validated at construction and safe for concurrent
// use. Their zero values are deliberately invalid so that improperly
// constructed instances are caught by Validate rather than silently accepted.
package kernel
