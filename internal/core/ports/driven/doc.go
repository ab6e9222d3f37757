// Package driven defines the outbound ports of the inkbridge core.
//
// Driven ports are interfaces the core depends on and adapters implement:
// key-value persistence, upload backends, the embedded editor surface, the
// host error sink, and credential exchange. Services receive implementations
// at construction time so tests can substitute in-memory fakes.
package driven
