//go:build linux || darwin

package memimage

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps a memory dump read-only. The mapping is private, so even a
// misbehaving host cannot write through to the capture file.
func mapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if st.Size() == 0 {
		_ = f.Close()
		return nil, nil, fmt.Errorf("empty memory dump: %s", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("mmap failed: %w", err)
	}

	unmap := func() error {
		err := unix.Munmap(data)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		return err
	}
	return data, unmap, nil
}
