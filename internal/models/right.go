package models

// Right is the permission level stored on a grant row. Levels are totally
// ordered: a higher right implies every lower capability.
type Right int

const (
	// RightNone is never persisted; it is the engine's answer for "no access".
	RightNone Right = -1

	RightRead  Right = 0
	RightWrite Right = 1
	RightAdmin Right = 2
)

// Includes reports whether r covers the capability required by min.
func (r Right) Includes(min Right) bool {
	return r >= min
}

// Valid reports whether r is a storable grant level.
func (r Right) Valid() bool {
	return r >= RightRead && r <= RightAdmin
}
