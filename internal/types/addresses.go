package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the next byte to be transferred
	// over the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	//
	//  Bit 7: Transfer Start Flag (1=Transfer requested)
	//  Bit 0: Shift Clock (1=Internal clock)
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. Internally
	// the divider is a 16-bit counter, only the upper 8 bits may
	// be read. Writing any value resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. TIMA is
	// incremented on the falling edge of the divider bit selected
	// by TAC. When TIMA overflows it is reloaded from TMA and a
	// timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select (00=bit 9, 01=bit 3, 10=bit 5, 11=bit 7)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// IE is the address of the IE hardware register. Writing a 1
	// to a bit in IE enables the corresponding interrupt, and writing
	// a 0 disables it.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the 16-bit address space. Each region is
// described by its first and last address (inclusive).
const (
	ROMStart      uint16 = 0x0000
	ROMEnd        uint16 = 0x7FFF
	VRAMStart     uint16 = 0x8000
	VRAMEnd       uint16 = 0x9FFF
	ExtRAMStart   uint16 = 0xA000
	ExtRAMEnd     uint16 = 0xBFFF
	WRAMStart     uint16 = 0xC000
	WRAMEnd       uint16 = 0xDFFF
	EchoStart     uint16 = 0xE000
	EchoEnd       uint16 = 0xFDFF
	OAMStart      uint16 = 0xFE00
	OAMEnd        uint16 = 0xFE9F
	UnusableStart uint16 = 0xFEA0
	UnusableEnd   uint16 = 0xFEFF
	IOStart       uint16 = 0xFF00
	IOEnd         uint16 = 0xFF7F
	HRAMStart     uint16 = 0xFF80
	HRAMEnd       uint16 = 0xFFFE
)

const (
	// VRAMSize is the size of the video RAM window (8 KiB).
	VRAMSize = int(VRAMEnd-VRAMStart) + 1
	// WRAMSize is the size of the work RAM (8 KiB).
	WRAMSize = int(WRAMEnd-WRAMStart) + 1
	// HRAMSize is the size of the high RAM (127 bytes).
	HRAMSize = int(HRAMEnd-HRAMStart) + 1
	// ExtRAMSize is the size of the external cartridge RAM window (8 KiB).
	ExtRAMSize = int(ExtRAMEnd-ExtRAMStart) + 1
)
