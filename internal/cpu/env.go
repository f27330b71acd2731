package cpu

import (
	"os"
	"strconv"
)

// ForceGenericEnv names the environment variable that disables every SIMD
// kernel when set to a true value.
const ForceGenericEnv = "ALGO_STDDEV_FORCE_GENERIC"

// forceGenericFromEnv reports whether ForceGenericEnv is set.
// Any non-empty value that does not parse as a bool counts as true.
func forceGenericFromEnv() bool {
	val := os.Getenv(ForceGenericEnv)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
