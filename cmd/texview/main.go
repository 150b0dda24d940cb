// Command texview uploads an image into an OpenGL texture and either shows
// it in a window or, with --headless, reads it back and verifies it.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
