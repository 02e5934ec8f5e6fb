package rendering

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Font sizes in half-points, the OOXML run unit.
const (
	sizeName    = 48
	sizeSection = 28
	sizeBody    = 22
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>
`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

// RenderDocx renders the resume as a .docx file: a zip package holding
// the content types part, the package relationships, and the document
// body. The document is self-contained, with run-level formatting
// instead of a styles part.
func RenderDocx(doc *ResumeDoc) ([]byte, error) {
	if doc == nil || (doc.Name == "" && len(doc.Sections) == 0) {
		return nil, &RenderError{Message: "resume document is empty"}
	}

	var body strings.Builder

	if doc.Name != "" {
		body.WriteString(paragraphXML(`<w:jc w:val="center"/>`, runXML(doc.Name, true, sizeName)))
	}
	if doc.Contact != "" {
		body.WriteString(paragraphXML(`<w:jc w:val="center"/><w:spacing w:after="240"/>`, runXML(doc.Contact, false, sizeBody)))
	}

	for _, section := range doc.Sections {
		if section.Title != "" {
			body.WriteString(paragraphXML(`<w:spacing w:before="240" w:after="120"/>`,
				runXML(strings.ToUpper(section.Title), true, sizeSection)))
		}
		for _, block := range section.Blocks {
			switch block.Kind {
			case BlockHeading:
				body.WriteString(paragraphXML(`<w:spacing w:before="120" w:after="60"/>`,
					runXML(block.Text, true, sizeBody)))
			case BlockBullet:
				body.WriteString(paragraphXML(`<w:ind w:left="360"/><w:spacing w:after="60"/>`,
					runXML("• "+block.Text, false, sizeBody)))
			default:
				body.WriteString(paragraphXML(`<w:spacing w:after="120"/>`,
					runXML(block.Text, false, sizeBody)))
			}
		}
	}

	return packageDocx(documentXML(body.String()))
}

// WriteDocx renders the resume and writes it to path.
func WriteDocx(doc *ResumeDoc, path string) error {
	data, err := RenderDocx(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to write document to %s", path), Cause: err}
	}
	return nil
}

// ResumeFilename builds the output filename for a tailored resume,
// with company and position sanitized for the filesystem.
func ResumeFilename(company, position string) string {
	base := strings.Trim(sanitizeToken(company)+"_"+sanitizeToken(position), "_")
	if base == "" {
		return "resume.docx"
	}
	return base + "_resume.docx"
}

func sanitizeToken(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

func packageDocx(document string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", document},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, &RenderError{Message: "failed to create package part " + part.name, Cause: err}
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, &RenderError{Message: "failed to write package part " + part.name, Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &RenderError{Message: "failed to finalize package", Cause: err}
	}
	return buf.Bytes(), nil
}

func documentXML(body string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	b.WriteString("<w:body>")
	b.WriteString(body)
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1080" w:right="1080" w:bottom="1080" w:left="1080"/></w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func paragraphXML(props string, runs ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	if props != "" {
		b.WriteString("<w:pPr>")
		b.WriteString(props)
		b.WriteString("</w:pPr>")
	}
	for _, run := range runs {
		b.WriteString(run)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func runXML(text string, bold bool, size int) string {
	var b strings.Builder
	b.WriteString("<w:r><w:rPr>")
	b.WriteString(`<w:rFonts w:ascii="Arial" w:hAnsi="Arial"/>`)
	if bold {
		b.WriteString("<w:b/>")
	}
	fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, size, size)
	b.WriteString("</w:rPr>")
	fmt.Fprintf(&b, `<w:t xml:space="preserve">%s</w:t>`, EscapeXML(text))
	b.WriteString("</w:r>")
	return b.String()
}
