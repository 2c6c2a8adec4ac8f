// Package testing switches shop24 binaries into test mode when imported for
// side effects from a test package.
package testing

import "os"

func init() {
	if os.Getenv("SHOP24_TEST_MODE") == "" {
		_ = os.Setenv("SHOP24_TEST_MODE", "1")
	}
	// Keep tests away from a developer's .env and live services.
	_ = os.Setenv("APP_STORE", "memory")
	_ = os.Setenv("REDIS_ADDR", "")
}
