//go:build amd64 && !purego

package stddev

// Blank imports run each package's init(), which registers its kernels
// with the global registry.

import (
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"

	// Scalar reference
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/generic"

	// AMD64 kernels
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/amd64/avx"
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/amd64/sse"
	_ "github.com/cwbudde/algo-stddev/stddev/internal/arch/amd64/sse41"
)
