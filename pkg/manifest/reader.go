package manifest

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// Options controls how descriptors are located
type Options struct {
	// Pattern matches descriptor file names, e.g. "*.xml"
	Pattern string

	// RootTags are the accepted root element names. When a document holds
	// more than one of them, the earliest tag in this list wins.
	RootTags []string

	// CLIFolder is the component sub-directory holding CLI scripts
	CLIFolder string
}

// OptionsFromConfig builds reader options from the configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Pattern:   cfg.Manifest.Pattern,
		RootTags:  cfg.Manifest.RootTags,
		CLIFolder: cfg.Layout.CLI,
	}
}

// Reader reads extension descriptors
type Reader struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// NewReader creates a Reader over fsys
func NewReader(fsys types.FS, opts Options) *Reader {
	return &Reader{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("manifest"),
	}
}

// Read looks for a descriptor of the given kind directly inside dir.
// Candidate files are tried in name order and the first one that describes
// a kind extension with an identity wins.
func (r *Reader) Read(dir string, kind types.ExtensionKind) (types.Extension, error) {
	if !kind.IsValid() {
		return types.Extension{}, errors.Newf(errors.ErrInvalidInput, "unknown extension kind %q", kind).
			WithDetail("dir", dir)
	}

	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return types.Extension{}, errors.Wrapf(err, errors.ErrManifestNotFound, "cannot list %s", dir).
			WithDetail("dir", dir)
	}

	var failure error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(r.opts.Pattern, entry.Name()); !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if info, err := r.fs.Stat(path); err != nil || !info.Mode().IsRegular() {
			continue
		}

		ext, err := r.readFile(path, dir, kind)
		if err == nil {
			r.logger.Debug().
				Str("kind", kind.String()).
				Str("name", ext.Name).
				Str("file", path).
				Msg("Descriptor accepted")
			return ext, nil
		}

		r.logger.Trace().Err(err).Str("file", path).Msg("Descriptor rejected")
		if severity(err) > severity(failure) {
			failure = err
		}
	}

	if failure == nil {
		return types.Extension{}, errors.Newf(errors.ErrManifestNotFound, "no descriptor in %s", dir).
			WithDetail("dir", dir)
	}
	return types.Extension{}, failure
}

// severity ranks rejection reasons so Read reports the most useful one
func severity(err error) int {
	if err == nil {
		return 0
	}
	switch errors.GetErrorCode(err) {
	case errors.ErrManifestNotFound:
		return 1
	case errors.ErrManifestParse, errors.ErrFileAccess:
		return 2
	case errors.ErrManifestTypeMismatch:
		return 3
	case errors.ErrManifestMissingIdentity:
		return 4
	case errors.ErrManifestUnsupported:
		return 5
	}
	return 1
}

func (r *Reader) readFile(path, dir string, kind types.ExtensionKind) (types.Extension, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return types.Extension{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("file", path)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = passthroughCharset
	if err := doc.ReadFromBytes(data); err != nil {
		return types.Extension{}, errors.Wrapf(err, errors.ErrManifestParse, "cannot parse %s", path).
			WithDetail("file", path)
	}

	root := r.findRoot(doc)
	if root == nil || len(root.Attr) == 0 {
		return types.Extension{}, errors.Newf(errors.ErrManifestNotFound, "%s has no installation root", path).
			WithDetail("file", path)
	}

	declared := root.SelectAttrValue("type", "")
	if declared != kind.String() {
		return types.Extension{}, errors.Newf(errors.ErrManifestTypeMismatch, "%s describes a %q, not a %q", path, declared, kind).
			WithDetail("file", path).
			WithDetail("declared", declared).
			WithDetail("expected", kind.String())
	}

	d := &descriptor{doc: doc, root: root, dir: dir, file: path, rootTags: r.opts.RootTags}
	var ext types.Extension
	switch kind {
	case types.KindComponent:
		ext, err = d.component(r.fs, r.opts.CLIFolder)
	case types.KindModule:
		ext, err = d.module()
	case types.KindPlugin:
		ext, err = d.plugin()
	case types.KindTemplate:
		ext, err = d.template()
	}
	if err != nil {
		return types.Extension{}, err
	}

	if ext.Name == "" {
		return types.Extension{}, errors.Newf(errors.ErrManifestMissingIdentity, "%s declares no %s name", path, kind).
			WithDetail("file", path)
	}
	return ext, nil
}

// findRoot returns the first element named after the preferred root tag
func (r *Reader) findRoot(doc *etree.Document) *etree.Element {
	for _, tag := range r.opts.RootTags {
		if found := elementsByTag(&doc.Element, tag); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}

// passthroughCharset reads documents declaring a non UTF-8 charset as-is
func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// elementsByTag returns every descendant of e named tag, in document order
func elementsByTag(e *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			found = append(found, child)
		}
		found = append(found, elementsByTag(child, tag)...)
	}
	return found
}

// textContent concatenates all character data below e
func textContent(e *etree.Element) string {
	var b strings.Builder
	for _, token := range e.Child {
		switch t := token.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(textContent(t))
		}
	}
	return b.String()
}
