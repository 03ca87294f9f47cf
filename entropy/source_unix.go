//go:build !windows

package entropy

import (
	"io"
	"os"
)

const urandomPath = "/dev/urandom"

// openPlatformSource opens /dev/urandom directly, per spec: read exactly n
// bytes, fail if EOF arrives first.
func openPlatformSource() (io.Reader, error) {
	return os.Open(urandomPath)
}
