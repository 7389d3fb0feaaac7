package registry

import "errors"

var (
	// ErrCorruptState means the persisted registry exists but cannot be
	// parsed. Fatal for the run: assigning against a half-read registry
	// would compound the damage.
	ErrCorruptState = errors.New("registry state is corrupt")

	// ErrDuplicateID means an insert targeted an already-present global
	// identifier. Counting guarantees this never happens for registries
	// this tool wrote, so it indicates a hand-edited file or a logic
	// fault; records are never silently overwritten.
	ErrDuplicateID = errors.New("duplicate global identifier")

	// ErrNotFound means a remote-number update targeted an unknown
	// global identifier.
	ErrNotFound = errors.New("global identifier not found")
)
