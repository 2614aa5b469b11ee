package archimate

import (
	"bytes"
	"encoding/xml"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Serialize renders a Model as ArchiMate exchange XML. It is a pure
// rendering step: identical models and config always produce identical
// bytes, and nothing decided by the builder is reordered or recomputed
// beyond grouping elements into their layer sections.
func Serialize(m *Model, namespace, schemaLocation string) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<archimate:model xmlns:archimate="` + escape(namespace) + `"`)
	b.WriteString(` xmlns:xsi="` + xsiNamespace + `"`)
	b.WriteString(` xsi:schemaLocation="` + escape(schemaLocation) + `"`)
	b.WriteString(` identifier="` + escape(ElementID("model", m.Name)) + `"`)
	b.WriteString(` name="` + escape(m.Name) + `">` + "\n")

	for _, layer := range layerOrder {
		writeLayer(&b, m, layer)
	}
	writeRelationships(&b, m)

	b.WriteString("</archimate:model>\n")
	return b.Bytes()
}

func writeLayer(b *bytes.Buffer, m *Model, layer Layer) {
	var members []*Element
	for i := range m.Elements {
		if m.Elements[i].Layer == layer {
			members = append(members, &m.Elements[i])
		}
	}
	if len(members) == 0 {
		return
	}
	b.WriteString(`  <archimate:elements layer="` + string(layer) + `">` + "\n")
	for _, el := range members {
		writeElement(b, el)
	}
	b.WriteString("  </archimate:elements>\n")
}

func writeElement(b *bytes.Buffer, el *Element) {
	b.WriteString(`    <archimate:element identifier="` + escape(el.ID) + `"`)
	b.WriteString(` xsi:type="` + escape(TypeName(el.Type)) + `"`)
	b.WriteString(` name="` + escape(el.Name) + `"`)
	if el.Documentation == "" && len(el.Properties) == 0 {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">\n")
	if el.Documentation != "" {
		b.WriteString("      <archimate:documentation>" + escape(el.Documentation) + "</archimate:documentation>\n")
	}
	writeProperties(b, el.Properties, "      ")
	b.WriteString("    </archimate:element>\n")
}

func writeRelationships(b *bytes.Buffer, m *Model) {
	b.WriteString("  <archimate:relationships>\n")
	for i := range m.Relationships {
		rel := &m.Relationships[i]
		b.WriteString(`    <archimate:relationship identifier="` + escape(rel.ID) + `"`)
		b.WriteString(` source="` + escape(rel.Source) + `"`)
		b.WriteString(` target="` + escape(rel.Target) + `"`)
		b.WriteString(` xsi:type="` + escape(TypeName(rel.Type)) + `"`)
		if rel.Name != "" {
			b.WriteString(` name="` + escape(rel.Name) + `"`)
		}
		if len(rel.Properties) == 0 {
			b.WriteString("/>\n")
			continue
		}
		b.WriteString(">\n")
		writeProperties(b, rel.Properties, "      ")
		b.WriteString("    </archimate:relationship>\n")
	}
	b.WriteString("  </archimate:relationships>\n")
}

func writeProperties(b *bytes.Buffer, props []Property, indent string) {
	if len(props) == 0 {
		return
	}
	b.WriteString(indent + "<archimate:properties>\n")
	for _, p := range props {
		b.WriteString(indent + `  <archimate:property key="` + escape(p.Key) + `" value="` + escape(p.Value) + `"/>` + "\n")
	}
	b.WriteString(indent + "</archimate:properties>\n")
}

// escape applies standard XML text escaping, safe for both attribute values
// and element text.
func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
