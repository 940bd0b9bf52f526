package cartridge

import (
	"errors"
	"fmt"
)

var (
	// ErrUnloaded is matched by every *UnloadedAccessError.
	ErrUnloaded = errors.New("cartridge not loaded")
	// ErrHeaderTooShort is returned when a ROM image is too
	// small to contain a cartridge header.
	ErrHeaderTooShort = errors.New("rom too short for cartridge header")
)

// UnloadedAccessError reports a bus access to the cartridge
// before a ROM image was attached.
type UnloadedAccessError struct {
	Address uint16
	Write   bool
}

func (e *UnloadedAccessError) Error() string {
	op := "read from"
	if e.Write {
		op = "write to"
	}
	return fmt.Sprintf("%s unloaded cartridge at %04X", op, e.Address)
}

func (e *UnloadedAccessError) Is(target error) bool {
	return target == ErrUnloaded
}
