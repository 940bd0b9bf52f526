package mmu

import (
	"errors"
	"fmt"
)

// ErrAddressRange is matched by every *AddressRangeError.
var ErrAddressRange = errors.New("address range violation")

// AddressRangeError reports an address that, after translation,
// falls outside the fixed-size array backing its region. It only
// occurs when the bus is partitioned incorrectly.
type AddressRangeError struct {
	Address uint16
	Region  string
}

func (e *AddressRangeError) Error() string {
	return fmt.Sprintf("address range violation: %04X outside %s", e.Address, e.Region)
}

func (e *AddressRangeError) Is(target error) bool {
	return target == ErrAddressRange
}
