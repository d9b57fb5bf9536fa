package ports

import (
	"io"

	"edaviz/domain/dataset"
)

// FileHandle is an uploaded file: a name plus its byte content
type FileHandle interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// DatasetReader parses an uploaded file into an immutable Dataset.
// Implementations must not write to disk.
type DatasetReader interface {
	Load(file FileHandle) (*dataset.Dataset, error)
}
