// Package manifest reads extension descriptors.
//
// A descriptor is an XML file directly inside an extension directory. Its
// root element (<extension>, or the legacy <install>) declares the extension
// type; the remaining elements carry the identity, client, plugin group,
// media folder and language file declarations needed to link the extension
// into a site.
//
// Reader.Read returns a types.Extension or a coded error. The codes
// MANIFEST_NOT_FOUND, MANIFEST_TYPE_MISMATCH and MANIFEST_MISSING_IDENTITY
// mean the directory is not an extension of the requested kind; callers are
// expected to skip such directories silently (see errors.IsSkippable).
package manifest
