package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is matched by every IllegalOpcodeError.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")

// IllegalOpcodeError is raised when the CPU executes one of the
// opcodes that have no defined instruction.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *IllegalOpcodeError) Is(target error) bool {
	return target == ErrIllegalOpcode
}

// UndecodedPrefixError is raised when the 0xCB prefix entry is
// executed instead of the instruction it prefixes.
type UndecodedPrefixError struct {
	PC uint16
}

func (e *UndecodedPrefixError) Error() string {
	return fmt.Sprintf("cpu: undecoded 0xCB prefix at 0x%04X", e.PC)
}

// Fault is returned by Step when a fatal error is raised while
// executing an instruction. The CPU is stopped once a fault has
// occurred.
type Fault struct {
	PC     uint16 // address of the faulting instruction, or PC during dispatch
	Opcode uint8
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu: fault executing 0x%02X at 0x%04X: %v", f.Opcode, f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
