// Package testutil contains common test utilities.
package testutil

import "os"

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Setenv sets an environment variable for the duration of a test, restoring
// the old value when the test finishes.
func Setenv(c Cleanuper, name, value string) {
	old, had := os.LookupEnv(name)
	os.Setenv(name, value)
	c.Cleanup(func() {
		if had {
			os.Setenv(name, old)
		} else {
			os.Unsetenv(name)
		}
	})
}
