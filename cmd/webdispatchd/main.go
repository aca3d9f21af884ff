// Command webdispatchd serves a few sample handlers through webdispatch.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
