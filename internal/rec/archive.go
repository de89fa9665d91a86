package rec

import "io"

// Archive provides an interface for recording archive backends. Flushed
// output files are copied into the archive under their base filename.
// Operations use io.Reader for streaming so large recordings are never
// loaded into memory whole.
type Archive interface {
	// Put stores an archived recording under the given name.
	// size is the number of bytes that will be read from r.
	// Storing the same name twice overwrites the previous copy.
	Put(name string, r io.Reader, size int64) error

	// ValidateSetup verifies that the archive is accessible and properly
	// configured.
	ValidateSetup() error
}
