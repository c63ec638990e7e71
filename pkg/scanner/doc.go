// Package scanner discovers the extensions of a repository.
//
// A repository holds any subset of component/, modules/, plugins/ and
// templates/. Modules and templates are either flat or split into admin/ and
// site/ folders. Plugins are either flat or grouped into folders named after
// their plugin group. Only immediate sub-directories are candidates, and a
// candidate is kept only when its descriptor declares the expected kind.
package scanner
