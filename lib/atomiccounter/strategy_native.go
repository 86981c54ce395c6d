//go:build !atomiccounter_locked

package atomiccounter

// Every Go target has 32-bit atomic instructions, so this is the default.
type defaultCell = nativeCell

const strategyName = "native"
