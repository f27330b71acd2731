//go:build purego || !(amd64 || arm64)

package stddev

// Only the scalar reference is available on other architectures and in
// purego builds.

import (
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/generic"
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)
