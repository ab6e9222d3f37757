// Package driving defines the inbound ports of the inkbridge core.
//
// Driving ports are the interfaces the core offers to its callers: the
// bridge message router, the content service, the upload orchestrator, and
// the image host settings service. Adapters (the embedded surface binding,
// the CLI) depend on these interfaces, never on concrete services.
package driving
