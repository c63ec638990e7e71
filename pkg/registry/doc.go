// Package registry provides a small generic, thread-safe registry keyed by a
// string type. relink uses it to dispatch extension kinds to their mappers.
package registry
