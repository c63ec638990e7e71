package types

// LanguageFile is a single language file declaration.
type LanguageFile struct {
	Locale string
	Path   string
}

// LanguageGroup holds the language files declared by one <languages> block,
// grouped by locale tag. Locales keep the order of their first declaration and
// files keep their declaration order within a locale.
type LanguageGroup struct {
	// Folder is the absolute folder the declared paths are relative to.
	// Empty when the descriptor has no <languages> block.
	Folder string

	locales []string
	files   map[string][]string
}

// NewLanguageGroup creates an empty group rooted at folder
func NewLanguageGroup(folder string) LanguageGroup {
	return LanguageGroup{
		Folder: folder,
		files:  make(map[string][]string),
	}
}

// Add appends path under locale. Empty paths are rejected.
func (g *LanguageGroup) Add(locale, path string) bool {
	if path == "" {
		return false
	}
	if g.files == nil {
		g.files = make(map[string][]string)
	}
	if _, seen := g.files[locale]; !seen {
		g.locales = append(g.locales, locale)
	}
	g.files[locale] = append(g.files[locale], path)
	return true
}

// Locales returns the declared locale tags in declaration order
func (g LanguageGroup) Locales() []string {
	out := make([]string, len(g.locales))
	copy(out, g.locales)
	return out
}

// Files returns the paths declared for locale
func (g LanguageGroup) Files(locale string) []string {
	files := g.files[locale]
	out := make([]string, len(files))
	copy(out, files)
	return out
}

// All returns every declaration, grouped by locale
func (g LanguageGroup) All() []LanguageFile {
	var out []LanguageFile
	for _, locale := range g.locales {
		for _, path := range g.files[locale] {
			out = append(out, LanguageFile{Locale: locale, Path: path})
		}
	}
	return out
}

// Len returns the number of declared files
func (g LanguageGroup) Len() int {
	n := 0
	for _, files := range g.files {
		n += len(files)
	}
	return n
}

// IsEmpty reports whether no file is declared
func (g LanguageGroup) IsEmpty() bool {
	return g.Len() == 0
}
