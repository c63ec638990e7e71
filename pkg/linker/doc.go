// Package linker applies link mappings to a site.
//
// Unlink removes whatever exists at the destinations of a mapping and Link
// creates the links. Both are best effort: every operation yields a
// types.LinkResult and a failure never stops the remaining operations.
//
// Removing a real directory walks it with an explicit link check at every
// step. A link found inside the tree is removed as a single entry and never
// followed, so linked content elsewhere is left untouched.
package linker
