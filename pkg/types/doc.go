// Package types defines the core data model used throughout relink.
// This includes extension kinds and records, language file groups, the
// link mapping produced for each extension, the platform value and the
// filesystem interface the link manager operates on.
package types
