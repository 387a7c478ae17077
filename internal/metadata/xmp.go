package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// xmpNamespaces declared in every packet. The scatterforge namespace
// carries software provenance fields.
var xmpNamespaces = [][2]string{
	{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{"dc", "http://purl.org/dc/elements/1.1/"},
	{"xmp", "http://ns.adobe.com/xap/1.0/"},
	{"xmpRights", "http://ns.adobe.com/xap/1.0/rights/"},
	{"cc", "http://creativecommons.org/ns#"},
	{"scatterforge", "http://scatterforge.org/ns/1.0/"},
}

// XMPPacket renders a metadata field set as an XMP packet suitable for
// embedding in image files. Most image viewers and operating systems read
// XMP, which keeps the scientific provenance attached to the figure.
func XMPPacket(fields map[string]string) string {
	var b strings.Builder
	b.WriteString(`<?xpacket begin="` + "\uFEFF" + `" id="W5M0MpCehiHzreSzNTczkc9d"?>` + "\n")
	b.WriteString("<x:xmpmeta xmlns:x=\"adobe:ns:meta/\">\n")
	b.WriteString("  <rdf:RDF\n")
	for _, ns := range xmpNamespaces {
		fmt.Fprintf(&b, "    xmlns:%s=%q\n", ns[0], ns[1])
	}
	b.WriteString("  >\n")
	b.WriteString("    <rdf:Description rdf:about=\"\">\n")

	if v := fields["Title"]; v != "" {
		fmt.Fprintf(&b, "      <dc:title>%s</dc:title>\n", escapeXML(v))
	}
	if v := fields["Author"]; v != "" {
		b.WriteString("      <dc:creator>\n        <rdf:Seq>\n")
		fmt.Fprintf(&b, "          <rdf:li>%s</rdf:li>\n", escapeXML(v))
		b.WriteString("        </rdf:Seq>\n      </dc:creator>\n")
	}
	if v := fields["Subject"]; v != "" {
		fmt.Fprintf(&b, "      <dc:description>%s</dc:description>\n", escapeXML(v))
	}
	if v := fields["CreateDate"]; v != "" {
		fmt.Fprintf(&b, "      <xmp:CreateDate>%s</xmp:CreateDate>\n", escapeXML(v))
	}
	if v := fields["License"]; v != "" {
		fmt.Fprintf(&b, "      <xmpRights:UsageTerms>%s</xmpRights:UsageTerms>\n", escapeXML(v))
		if url, ok := licenseURL(v); ok {
			fmt.Fprintf(&b, "      <cc:license rdf:resource=%q/>\n", url)
		}
	}
	if v := fields["DocumentID"]; v != "" {
		fmt.Fprintf(&b, "      <xmp:Identifier>%s</xmp:Identifier>\n", escapeXML(v))
	}

	// Custom scientific fields, sorted for stable output.
	var custom []string
	for k := range fields {
		switch k {
		case "Title", "Author", "Subject", "CreateDate", "License", "DocumentID":
			continue
		}
		if fields[k] != "" {
			custom = append(custom, k)
		}
	}
	sort.Strings(custom)
	for _, k := range custom {
		tag := xmlName(k)
		fmt.Fprintf(&b, "      <scatterforge:%s>%s</scatterforge:%s>\n", tag, escapeXML(fields[k]), tag)
	}

	b.WriteString("    </rdf:Description>\n")
	b.WriteString("  </rdf:RDF>\n")
	b.WriteString("</x:xmpmeta>\n")
	b.WriteString(`<?xpacket end="w"?>`)
	return b.String()
}

func licenseURL(license string) (string, bool) {
	switch license {
	case "CC-BY-4.0":
		return "https://creativecommons.org/licenses/by/4.0/", true
	case "CC-BY-SA-4.0":
		return "https://creativecommons.org/licenses/by-sa/4.0/", true
	case "CC0-1.0":
		return "https://creativecommons.org/publicdomain/zero/1.0/", true
	}
	return "", false
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// xmlName lowercases and strips characters that are not valid in an XML
// element name.
func xmlName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "field"
	}
	name := b.String()
	// An XML element name may not start with a digit or hyphen.
	if c := name[0]; (c >= '0' && c <= '9') || c == '-' {
		name = "_" + name
	}
	return name
}
