//go:build !linux && !darwin

package memimage

import "os"

// mapFile falls back to reading the dump into memory on platforms without a
// usable mmap.
func mapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
