// Package domain defines the core business entities for inkbridge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: A tagged inbound message from the embedded editor surface
//   - DocumentState: The host-side copy of the edited document
//   - ImageHost: A configured upload backend variant
//   - UploadRequest / Outcome: One orchestrated upload attempt and its result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
