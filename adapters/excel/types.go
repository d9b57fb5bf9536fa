package excel

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"edaviz/ports"
)

// Format is the parser family chosen from a file name
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// FileHandle is an uploaded file: a name plus its byte content
type FileHandle = ports.FileHandle

// UploadedFile adapts a multipart form file
type UploadedFile struct {
	Header *multipart.FileHeader
}

func (f UploadedFile) Name() string { return f.Header.Filename }

func (f UploadedFile) Open() (io.ReadCloser, error) { return f.Header.Open() }

// LocalFile reads a file from disk, used by the CLI
type LocalFile struct {
	Path string
}

func (f LocalFile) Name() string { return filepath.Base(f.Path) }

func (f LocalFile) Open() (io.ReadCloser, error) { return os.Open(f.Path) }

// MemoryFile holds content already in memory
type MemoryFile struct {
	FileName string
	Data     []byte
}

func (f MemoryFile) Name() string { return f.FileName }

func (f MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}
