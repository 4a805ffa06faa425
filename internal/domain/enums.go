package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// WarningCode identifies the kind of degraded extraction.
type WarningCode string

const (
	WarningNoQuestionsFound WarningCode = "NO_QUESTIONS_FOUND"
	WarningNoOptionsFound   WarningCode = "NO_OPTIONS_FOUND"
)

// ExportFormat is a spreadsheet format an extraction can be downloaded as.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
