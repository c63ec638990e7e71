package testutil

import (
	"fmt"
	"strings"
)

// Lang is a language file declaration used by the descriptor builders
type Lang struct {
	Tag  string
	Path string
}

func languagesXML(folder string, langs []Lang) string {
	if langs == nil {
		return ""
	}
	var b strings.Builder
	if folder != "" {
		fmt.Fprintf(&b, "\t<languages folder=%q>\n", folder)
	} else {
		b.WriteString("\t<languages>\n")
	}
	for _, l := range langs {
		fmt.Fprintf(&b, "\t\t<language tag=%q>%s</language>\n", l.Tag, l.Path)
	}
	b.WriteString("\t</languages>\n")
	return b.String()
}

// ModuleXML returns a module descriptor. A nil langs slice omits <languages>.
func ModuleXML(name, client, langFolder string, langs ...Lang) string {
	clientAttr := ""
	if client != "" {
		clientAttr = fmt.Sprintf(" client=%q", client)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<extension version="3.0" type="module"%s method="upgrade">
	<name>%s</name>
	<files>
		<filename module=%q>%s.php</filename>
		<folder>tmpl</folder>
	</files>
%s</extension>
`, clientAttr, strings.ToUpper(name), name, name, languagesXML(langFolder, langsOrNil(langs)))
}

// PluginXML returns a plugin descriptor
func PluginXML(name, group, langFolder string, langs ...Lang) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<extension version="3.0" type="plugin" group=%q method="upgrade">
	<name>plg_%s_%s</name>
	<files>
		<filename plugin=%q>%s.php</filename>
	</files>
%s</extension>
`, group, group, name, name, name, languagesXML(langFolder, langsOrNil(langs)))
}

// TemplateXML returns a template descriptor
func TemplateXML(name, client string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<extension version="3.0" type="template" client=%q method="upgrade">
	<name>%s</name>
	<files>
		<filename>index.php</filename>
	</files>
</extension>
`, client, name)
}

// ComponentXML returns a component descriptor with a front-end and a
// back-end <files> block. media may be empty to omit <media>.
func ComponentXML(name, siteFolder, adminFolder, media string, siteLangs, adminLangs []Lang) string {
	mediaXML := ""
	if media != "" {
		mediaXML = fmt.Sprintf("\t<media destination=%q folder=%q>\n\t\t<folder>css</folder>\n\t</media>\n", name, media)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<extension version="3.0" type="component" method="upgrade">
	<name>%s</name>
	<files folder=%q>
		<filename>%s.php</filename>
	</files>
%s%s	<administration>
		<menu>%s</menu>
		<files folder=%q>
			<filename>%s.php</filename>
		</files>
%s	</administration>
</extension>
`, name, siteFolder, name, mediaXML, languagesXML("", siteLangs), name, adminFolder, name,
		indent(languagesXML("", adminLangs)))
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line != "" {
			b.WriteString("\t" + line)
		}
	}
	return b.String()
}

func langsOrNil(langs []Lang) []Lang {
	if len(langs) == 0 {
		return nil
	}
	return langs
}
