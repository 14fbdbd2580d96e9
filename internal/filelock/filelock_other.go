//go:build !unix && !windows

package filelock

import "os"

// Platforms without advisory locks (wasm, plan9) run unlocked.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
