// Package mapping computes the links an extension needs in a site.
//
// Each extension kind has a mapping function registered under its kind. The
// result is a types.LinkMapping: directories to symlink, files to symlink
// and files to hard-link. Mappings are derived data; they are recomputed for
// every unlink and link pass and never cached.
//
// Destinations are fixed by the site layout:
//
//	component   components/<name>, administrator/components/<name>, media/<name>, cli/<script>
//	module      [administrator/]modules/<name>
//	plugin      plugins/<group>/<name>, or each plugin file in plugins/<group>/ on old sites
//	template    [administrator/]templates/<name>
//	language    [administrator/]language/<locale>/<file>
package mapping
