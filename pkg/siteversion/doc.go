// Package siteversion finds the version of the target site and compares it
// against thresholds.
//
// The version is read from the first existing version declaration file of the
// site, earliest path first. Files declaring RELEASE and DEV_LEVEL yield
// "RELEASE.DEV_LEVEL"; newer files declaring MAJOR_VERSION, MINOR_VERSION and
// PATCH_VERSION yield "MAJOR.MINOR.PATCH".
package siteversion
