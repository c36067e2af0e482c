package config

import "sync"

// ResetForTest drops the cached Load result so a test can load again with a
// different environment or config file.
func ResetForTest() {
	loaded = nil
	loadErr = nil
	loadOnce = sync.Once{}
}
