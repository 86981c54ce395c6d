//go:build atomiccounter_locked

package atomiccounter

// Use: go build -tags=atomiccounter_locked
type defaultCell = lockedCell

const strategyName = "locked"
