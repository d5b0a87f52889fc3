// Command lined is a demonstration shell built on the lined editor. It
// reads commands with completion, persistent history and multi-line
// continuation, and echoes each accepted command back.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(2)
	}
}
