package types

// ExtensionKind is the declared type of an extension. The values match the
// type attribute of an extension descriptor.
type ExtensionKind string

const (
	// KindComponent is the single application-level extension of a repository
	KindComponent ExtensionKind = "component"

	// KindModule is a front-end or back-end module
	KindModule ExtensionKind = "module"

	// KindPlugin is an event plugin registered under a group
	KindPlugin ExtensionKind = "plugin"

	// KindTemplate is a front-end or back-end template
	KindTemplate ExtensionKind = "template"
)

// AllKinds lists every kind in the order categories are processed.
var AllKinds = []ExtensionKind{KindComponent, KindModule, KindPlugin, KindTemplate}

// String returns the descriptor type string
func (k ExtensionKind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known kinds
func (k ExtensionKind) IsValid() bool {
	switch k {
	case KindComponent, KindModule, KindPlugin, KindTemplate:
		return true
	}
	return false
}
