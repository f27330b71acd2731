//go:build arm64 && !purego

package stddev

// Blank imports run each package's init(), which registers its kernels
// with the global registry.

import (
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"

	// Scalar reference
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/generic"

	// ARM64 kernels
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/arm64/neon"
)
