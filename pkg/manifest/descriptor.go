package manifest

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

const componentPrefix = "com_"

// descriptor is a parsed document whose root declares the requested kind
type descriptor struct {
	doc      *etree.Document
	root     *etree.Element
	dir      string
	file     string
	rootTags []string
}

func (d *descriptor) all(tag string) []*etree.Element {
	return elementsByTag(&d.doc.Element, tag)
}

func (d *descriptor) first(tag string) *etree.Element {
	if found := d.all(tag); len(found) > 0 {
		return found[0]
	}
	return nil
}

// folder resolves the folder attribute of e against the extension
// directory. A missing attribute means the extension directory itself.
func (d *descriptor) folder(e *etree.Element) string {
	if e == nil {
		return d.dir
	}
	return filepath.Join(d.dir, filepath.FromSlash(e.SelectAttrValue("folder", "")))
}

// isTopLevel reports whether e sits directly below one of the accepted root tags
func (d *descriptor) isTopLevel(e *etree.Element, tag string) bool {
	path := e.GetPath()
	for _, root := range d.rootTags {
		if path == "/"+root+"/"+tag {
			return true
		}
	}
	return false
}

// identity reads attr from the last child of the first <files> block that
// carries any attribute at all. A trailing child with other attributes only
// yields an empty identity.
func (d *descriptor) identity(attr string) string {
	files := d.first("files")
	if files == nil {
		return ""
	}
	name := ""
	for _, child := range files.ChildElements() {
		if len(child.Attr) > 0 {
			name = child.SelectAttrValue(attr, "")
		}
	}
	return strings.TrimSpace(name)
}

// name returns the lower-cased text of the first <name> element
func (d *descriptor) name() string {
	e := d.first("name")
	if e == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(textContent(e)))
}

// languages reads a <languages> block. Child elements declare one file each,
// keyed by their tag attribute; other nodes and empty paths are skipped.
func (d *descriptor) languages(block *etree.Element) types.LanguageGroup {
	if block == nil {
		return types.LanguageGroup{}
	}
	group := types.NewLanguageGroup(d.folder(block))
	for _, child := range block.ChildElements() {
		path := strings.TrimSpace(textContent(child))
		group.Add(child.SelectAttrValue("tag", ""), path)
	}
	return group
}

func (d *descriptor) client() types.Client {
	return types.Client(strings.TrimSpace(d.root.SelectAttrValue("client", "")))
}

func (d *descriptor) module() (types.Extension, error) {
	return types.Extension{
		Kind:      types.KindModule,
		Name:      d.identity("module"),
		Path:      d.dir,
		Client:    d.client(),
		Languages: d.languages(d.first("languages")),
	}, nil
}

func (d *descriptor) plugin() (types.Extension, error) {
	ext := types.Extension{
		Kind:      types.KindPlugin,
		Name:      d.identity("plugin"),
		Path:      d.dir,
		Group:     strings.TrimSpace(d.root.SelectAttrValue("group", "")),
		Languages: d.languages(d.first("languages")),
	}
	if ext.Name != "" && ext.Group == "" {
		return types.Extension{}, errors.Newf(errors.ErrManifestMissingIdentity, "%s declares no plugin group", d.file).
			WithDetail("file", d.file)
	}
	return ext, nil
}

func (d *descriptor) template() (types.Extension, error) {
	return types.Extension{
		Kind:      types.KindTemplate,
		Name:      d.name(),
		Path:      d.dir,
		Client:    d.client(),
		Languages: d.languages(d.first("languages")),
	}, nil
}

func (d *descriptor) component(fsys types.FS, cliFolder string) (types.Extension, error) {
	name := d.name()
	if name == "" {
		return types.Extension{}, nil
	}
	if !strings.HasPrefix(name, componentPrefix) {
		name = componentPrefix + name
	}

	site, admin, err := d.splitFiles()
	if err != nil {
		return types.Extension{}, err
	}
	siteLang, adminLang, err := d.splitLanguages()
	if err != nil {
		return types.Extension{}, err
	}

	layout := &types.ComponentLayout{
		SiteFolder:     d.folder(site),
		AdminFolder:    d.folder(admin),
		SiteLanguages:  d.languages(siteLang),
		AdminLanguages: d.languages(adminLang),
	}
	if media := d.first("media"); media != nil {
		layout.MediaFolder = d.folder(media)
	}
	if cliFolder != "" {
		cli := filepath.Join(d.dir, cliFolder)
		if info, err := fsys.Stat(cli); err == nil && info.IsDir() {
			layout.CLIFolder = cli
		}
	}

	return types.Extension{
		Kind:      types.KindComponent,
		Name:      name,
		Path:      d.dir,
		Component: layout,
	}, nil
}

// splitFiles tells the front-end <files> block from the back-end one. The
// front-end block sits directly below the root; the other one is back-end.
func (d *descriptor) splitFiles() (site, admin *etree.Element, err error) {
	blocks := d.all("files")
	if len(blocks) != 2 {
		return nil, nil, d.unsupported("expected 2 <files> blocks, found %d", len(blocks))
	}

	first, second := d.isTopLevel(blocks[0], "files"), d.isTopLevel(blocks[1], "files")
	switch {
	case first && !second:
		return blocks[0], blocks[1], nil
	case second && !first:
		return blocks[1], blocks[0], nil
	}
	return nil, nil, d.unsupported("cannot tell the front-end <files> block from the back-end one (%s, %s)",
		blocks[0].GetPath(), blocks[1].GetPath())
}

// splitLanguages does the same for <languages>. Either side may be missing.
func (d *descriptor) splitLanguages() (site, admin *etree.Element, err error) {
	blocks := d.all("languages")
	switch len(blocks) {
	case 0:
		return nil, nil, nil
	case 1:
		if d.isTopLevel(blocks[0], "languages") {
			return blocks[0], nil, nil
		}
		return nil, blocks[0], nil
	case 2:
		first, second := d.isTopLevel(blocks[0], "languages"), d.isTopLevel(blocks[1], "languages")
		switch {
		case first && !second:
			return blocks[0], blocks[1], nil
		case second && !first:
			return blocks[1], blocks[0], nil
		}
		return nil, nil, d.unsupported("cannot tell the front-end <languages> block from the back-end one (%s, %s)",
			blocks[0].GetPath(), blocks[1].GetPath())
	}
	return nil, nil, d.unsupported("expected at most 2 <languages> blocks, found %d", len(blocks))
}

func (d *descriptor) unsupported(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrManifestUnsupported, format, args...).
		WithDetail("file", d.file)
}
