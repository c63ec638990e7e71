// Package relink ties the pieces together: it detects the site version,
// scans the repository and runs the eight link phases.
//
// The phases run in a fixed order, component, modules, plugins, templates,
// each category unlinked before it is linked again. A phase never stops
// the run: extensions that cannot be mapped are skipped and link failures
// are collected in the Report.
package relink
