package types

import "fmt"

// Extension is an extension discovered in the repository. Kind tags which of
// the kind-specific fields are meaningful.
type Extension struct {
	Kind ExtensionKind

	// Name is the identity used for destination folders (com_foo, mod_bar,
	// plugin element, lower-cased template name)
	Name string

	// Path is the extension directory in the repository
	Path string

	Client Client

	// Group is the plugin group (system, content, user, ...)
	Group string

	// Languages is the language group of modules, plugins and templates
	Languages LanguageGroup

	// Component is only set for KindComponent
	Component *ComponentLayout
}

// ComponentLayout holds the folders a component descriptor declares.
type ComponentLayout struct {
	SiteFolder  string
	AdminFolder string

	// MediaFolder is empty when the descriptor has no <media> block
	MediaFolder string

	// CLIFolder is empty when the component has no cli directory
	CLIFolder string

	SiteLanguages  LanguageGroup
	AdminLanguages LanguageGroup
}

// IsZero reports whether the record is a placeholder with no identity
func (e Extension) IsZero() bool {
	return e.Name == ""
}

// Qualifier is the plugin group or the client of modules and templates.
// Components have none.
func (e Extension) Qualifier() string {
	switch e.Kind {
	case KindPlugin:
		return e.Group
	case KindModule, KindTemplate:
		return string(e.Client)
	}
	return ""
}

// Label is the progress label of the extension, e.g. "mod_menu (site)"
func (e Extension) Label() string {
	if q := e.Qualifier(); q != "" {
		return fmt.Sprintf("%s (%s)", e.Name, q)
	}
	return e.Name
}

// Inventory is the result of scanning a repository. It is built once per run
// and not modified afterwards.
type Inventory struct {
	// Component is a placeholder (IsZero) when the repository has none
	Component Extension
	Modules   []Extension
	Plugins   []Extension
	Templates []Extension
}

// ByKind returns the extensions of one category. The component category
// yields nothing for a placeholder component.
func (i *Inventory) ByKind(kind ExtensionKind) []Extension {
	switch kind {
	case KindComponent:
		if i.Component.IsZero() {
			return nil
		}
		return []Extension{i.Component}
	case KindModule:
		return i.Modules
	case KindPlugin:
		return i.Plugins
	case KindTemplate:
		return i.Templates
	}
	return nil
}

// Count returns the number of discovered extensions
func (i *Inventory) Count() int {
	n := len(i.Modules) + len(i.Plugins) + len(i.Templates)
	if !i.Component.IsZero() {
		n++
	}
	return n
}
