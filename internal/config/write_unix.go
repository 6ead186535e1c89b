//go:build !windows

package config

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes data to path atomically.
// On Unix systems, this uses renameio for atomic writes.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
