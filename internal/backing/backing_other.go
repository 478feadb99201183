//go:build !unix

// Package backing reserves the byte storage behind an arena.
package backing

import "fmt"

// Reserve allocates n zeroed bytes on the Go heap when mmap is not available.
func Reserve(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("backing: invalid size %d", n)
	}
	return make([]byte, n), func() error { return nil }, nil
}
