package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
)

// Content types of the workbook part.
const (
	ContentTypeWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ContentTypeMacroWorkbook = "application/vnd.ms-excel.sheet.macroEnabled.main+xml"
)

const (
	contentTypesPart = "[Content_Types].xml"
	vbaProjectPart   = "xl/vbaProject.bin"
	workbookPart     = "/xl/workbook.xml"
)

// macroExtensions are file extensions whose container keeps a VBA project.
var macroExtensions = map[string]bool{
	".xlsm": true,
	".xltm": true,
	".xlam": true,
}

// PackageInfo describes the OOXML container of a workbook.
type PackageInfo struct {
	// WorkbookContentType is the declared content type of xl/workbook.xml.
	WorkbookContentType string
	// HasVBAProject is true when xl/vbaProject.bin is present.
	HasVBAProject bool
}

// MacroEnabled reports whether the workbook part is declared macro-enabled.
func (p PackageInfo) MacroEnabled() bool {
	return p.WorkbookContentType == ContentTypeMacroWorkbook
}

// IsMacroExtension reports whether path names a macro-enabled container.
func IsMacroExtension(path string) bool {
	return macroExtensions[strings.ToLower(filepath.Ext(path))]
}

// InspectPackage reads the package parts of the workbook at path without
// loading any worksheet.
func InspectPackage(path string) (PackageInfo, error) {
	var info PackageInfo

	r, err := zip.OpenReader(path)
	if err != nil {
		return info, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == vbaProjectPart {
			info.HasVBAProject = true
			break
		}
	}

	data, err := readZipFile(&r.Reader, contentTypesPart)
	if err != nil {
		return info, err
	}
	info.WorkbookContentType = parseWorkbookContentType(data)

	return info, nil
}

// parseWorkbookContentType finds the Override entry for the workbook part.
func parseWorkbookContentType(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Override" {
			var partName, contentType string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "PartName":
					partName = attr.Value
				case "ContentType":
					contentType = attr.Value
				}
			}
			if strings.EqualFold(partName, workbookPart) {
				return contentType
			}
		}
	}

	return ""
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}
