//go:build !linux && !darwin

package main

import "errors"

func makeRaw(fd uintptr) (func(), error) {
	return nil, errors.New("raw terminal mode is not supported on this platform")
}
