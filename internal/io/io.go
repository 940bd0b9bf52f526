// Package io provides the I/O register window of the Game Boy
// (0xFF00 - 0xFF7F). Each hardware register is registered with
// read and write handlers on the Device, registers that nothing
// claims behave as plain storage.
package io

import (
	"io"

	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/log"
)

// Timer is the interface of the timer registers (DIV, TIMA, TMA
// and TAC) as seen by the Device.
type Timer interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// HardwareRegister is a single register of the I/O window.
type HardwareRegister struct {
	address types.HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Device is the I/O collaborator of the memory bus.
type Device struct {
	registers [0x80]*HardwareRegister
	raw       [0x80]uint8

	sb, sc uint8
	out    io.Writer

	irq *interrupts.Service
	Log log.Logger
}

// NewDevice returns a new Device, with the serial, timer and
// interrupt flag registers attached. Bytes transferred over the
// serial port are written to out, which may be nil.
func NewDevice(irq *interrupts.Service, timer Timer, out io.Writer) *Device {
	d := &Device{
		irq: irq,
		out: out,
		Log: log.NewNullLogger(),
	}

	// serial
	d.RegisterHardware(types.SB, func(v uint8) {
		d.sb = v
	}, func() uint8 {
		return d.sb
	})
	d.RegisterHardware(types.SC, d.writeSC, func() uint8 {
		return d.sc | 0x7E
	})

	// timer
	for _, addr := range []types.HardwareAddress{types.DIV, types.TIMA, types.TMA, types.TAC} {
		addr := addr
		d.RegisterHardware(addr, func(v uint8) {
			timer.Write(addr, v)
		}, func() uint8 {
			return timer.Read(addr)
		})
	}

	// interrupts
	d.RegisterHardware(types.IF, irq.WriteFlag, irq.ReadFlag)

	return d
}

// AttachSerial sets the writer that receives bytes transferred
// over the serial port. A nil writer discards them.
func (d *Device) AttachSerial(w io.Writer) {
	d.out = w
}

// RegisterHardware registers the read and write handlers of the
// hardware register at address, replacing any existing handlers.
// A nil write makes the register read-only, a nil read makes
// it read back as 0xFF.
func (d *Device) RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8) {
	d.registers[address&0x7F] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// Read returns the value of the register at address.
func (d *Device) Read(address uint16) uint8 {
	h := d.registers[address&0x7F]
	if h == nil {
		return d.raw[address&0x7F]
	}
	if h.read == nil {
		return 0xFF
	}
	return h.read()
}

// Write writes value to the register at address.
func (d *Device) Write(address uint16, value uint8) {
	h := d.registers[address&0x7F]
	if h == nil {
		d.raw[address&0x7F] = value
		return
	}
	if h.write != nil {
		h.write(value)
	}
}

// writeSC starts a transfer when bit 7 is set. No link partner
// is attached, so the transfer completes immediately, the byte
// in SB is handed to the output writer and 0xFF shifts in.
func (d *Device) writeSC(v uint8) {
	d.sc = v
	if v&types.Bit7 == 0 {
		return
	}

	if d.out != nil {
		if _, err := d.out.Write([]byte{d.sb}); err != nil {
			d.Log.Errorf("serial: unable to write output: %v", err)
		}
	}
	d.sb = 0xFF
	d.sc &^= types.Bit7
	d.irq.Request(interrupts.SerialFlag)
}
