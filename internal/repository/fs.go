package repository

import "github.com/spf13/afero"

// FileSystemRepository defines the interface for filesystem operations used
// by the run-report writer.

type FileSystemRepository interface {
	afero.Fs
}
