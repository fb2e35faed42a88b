// Package types provides core type definitions and interfaces for the Substate library.
//
// This package contains shared types that are used across multiple packages in the
// Substate library. By keeping these types in a separate package, we avoid import
// cycles between the main substate package and its internal implementations.
//
// Key types:
//   - TopicPartition: Identity of a single partition of a named stream
//   - FetchPosition: Next-read cursor fenced by a leader/epoch token
//   - SubscriptionMode: How the consumer's partition set is derived
//   - ResetPolicy: Offset reset strategy applied when a cursor is invalid
//   - RebalanceListener: Revoke/assign callbacks for assignment changes
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
