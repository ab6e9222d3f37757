// Package services implements the inkbridge core behind the driving ports.
//
// Services contain the business logic: the bridge message router, the
// content state store, the upload orchestrator and the image host settings
// service. They depend only on domain types and driven ports, so every
// collaborator can be substituted in tests.
package services
