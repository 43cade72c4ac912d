package domain

import "strings"

// DocumentType classifies a file by its editor category. The word/cell/slide
// vocabulary follows the external editor's protocol; everything else is
// grouped coarsely for listing and preview purposes.
type DocumentType string

const (
	DocumentTypeWord  DocumentType = "word"
	DocumentTypeCell  DocumentType = "cell"
	DocumentTypeSlide DocumentType = "slide"
	DocumentTypePDF   DocumentType = "pdf"
	DocumentTypeImage DocumentType = "image"
	DocumentTypeOther DocumentType = "other"
)

//nolint:gochecknoglobals // static lookup table
var extensionTypes = map[string]DocumentType{
	"doc":  DocumentTypeWord,
	"docx": DocumentTypeWord,
	"odt":  DocumentTypeWord,
	"rtf":  DocumentTypeWord,
	"txt":  DocumentTypeWord,

	"xls":  DocumentTypeCell,
	"xlsx": DocumentTypeCell,
	"ods":  DocumentTypeCell,
	"csv":  DocumentTypeCell,

	"ppt":  DocumentTypeSlide,
	"pptx": DocumentTypeSlide,
	"odp":  DocumentTypeSlide,

	"pdf": DocumentTypePDF,

	"jpg":  DocumentTypeImage,
	"jpeg": DocumentTypeImage,
	"png":  DocumentTypeImage,
	"gif":  DocumentTypeImage,
	"webp": DocumentTypeImage,
	"bmp":  DocumentTypeImage,
	"tiff": DocumentTypeImage,
}

// DocumentTypeForExtension maps a file extension (without the leading dot)
// to its DocumentType. Unknown extensions map to DocumentTypeOther.
func DocumentTypeForExtension(ext string) DocumentType {
	if t, ok := extensionTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return DocumentTypeOther
}

// Editable reports whether the document type is handled by the external
// collaborative editor.
func (t DocumentType) Editable() bool {
	switch t {
	case DocumentTypeWord, DocumentTypeCell, DocumentTypeSlide:
		return true
	default:
		return false
	}
}

// SplitFileName splits a filename into name and extension parts.
// The extension is returned without the leading dot.
func SplitFileName(fileName string) (name, ext string) {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 || idx == len(fileName)-1 {
		return fileName, ""
	}
	return fileName[:idx], fileName[idx+1:]
}
