package fsx

import (
	"context"
	"io"
	"path"
)

// FileReader reads files from backing storage
type FileReader interface {
	// ReadFile reads the whole file into memory
	ReadFile(ctx context.Context, filePath string) ([]byte, error)

	// ReadFileStream opens the file for streaming; caller closes
	ReadFileStream(ctx context.Context, filePath string) (io.ReadCloser, error)
}

// FileWriter writes and removes files in backing storage
type FileWriter interface {
	// WriteFile stores data at filePath, overwriting any existing file
	WriteFile(ctx context.Context, filePath string, data []byte) error

	// WriteFileStream stores the reader's content at filePath
	WriteFileStream(ctx context.Context, filePath string, r io.Reader) error

	// DeleteFile removes the file; deleting a missing file is not an error
	DeleteFile(ctx context.Context, filePath string) error
}

// FileSystem is the full storage surface
type FileSystem interface {
	FileReader
	FileWriter

	// Exists checks whether a file is present
	Exists(ctx context.Context, filePath string) (bool, error)

	// Join builds a storage path from segments
	Join(parts ...string) string
}

// Join is the default path joiner; storage keys use forward slashes
// regardless of host OS.
func Join(parts ...string) string {
	return path.Join(parts...)
}
