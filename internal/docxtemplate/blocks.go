package docxtemplate

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/alnah/go-dokufy/internal/pipeline"
)

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
`

const documentFooter = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="720" w:bottom="1440" w:left="720" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>
</w:body>
</w:document>`

var packageParts = map[string]string{
	"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
	"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
	"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`,
}

// FromBlocks builds a DOCX template with one paragraph per block. Each
// paragraph holds {{html(blockN)}} and the block markup is bound as blockN,
// so stencil converts the inline tags to formatted runs.
func FromBlocks(blocks []pipeline.Block) (*Processor, error) {
	var body strings.Builder
	values := make(map[string]any, len(blocks))
	for i, b := range blocks {
		key := fmt.Sprintf("block%d", i)
		values[key] = b.HTML
		body.WriteString("<w:p>")
		if b.Heading > 0 {
			fmt.Fprintf(&body, `<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, b.Heading)
		}
		fmt.Fprintf(&body, "<w:r><w:t>{{html(%s)}}</w:t></w:r></w:p>\n", key)
	}

	pkg, err := buildPackage(documentHeader + body.String() + documentFooter)
	if err != nil {
		return nil, err
	}

	p, err := LoadReader(bytes.NewReader(pkg))
	if err != nil {
		return nil, err
	}
	p.SetValues(values)
	return p, nil
}

func buildPackage(documentXML string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels"} {
		if err := write(name, packageParts[name]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
	}
	if err := write("word/document.xml", documentXML); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return buf.Bytes(), nil
}
