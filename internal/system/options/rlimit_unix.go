// Released under an MIT license. See LICENSE.

// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package options

import (
	"golang.org/x/sys/unix"
)

// frameCost is a rough estimate of the native stack bytes consumed per
// nested evaluator frame while molding values and unwinding errors.
const frameCost = 2048

// Depth returns a frame budget scaled to RLIMIT_STACK, or 0 when the
// limit cannot be determined.
func Depth() int {
	var lim unix.Rlimit

	err := unix.Getrlimit(unix.RLIMIT_STACK, &lim)
	if err != nil || lim.Cur == unix.RLIM_INFINITY {
		return 0
	}

	n := int(lim.Cur / frameCost)
	if n < 256 {
		n = 256
	}

	return n
}
