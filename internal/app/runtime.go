package app

import (
	"os"
	"sync/atomic"
)

const testModeEnv = "SHOP24_TEST_MODE"

var testMode atomic.Pointer[bool]

// InTestMode reports whether binaries should skip opening stores, queues and
// listeners. It reads SHOP24_TEST_MODE once.
func InTestMode() bool {
	if v := testMode.Load(); v != nil {
		return *v
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads SHOP24_TEST_MODE after environment changes.
func RefreshTestMode() bool {
	on := os.Getenv(testModeEnv) == "1"
	testMode.Store(&on)
	return on
}
