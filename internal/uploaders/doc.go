// Package uploaders provides the concrete image host backends and the pure
// mapping from a configured host variant to its implementation.
package uploaders
