package types

// Ticker is a peripheral device that advances alongside the CPU,
// such as the timer. The CPU calls TickM once for every machine
// cycle it consumes, whether executing or halted.
type Ticker interface {
	// TickM advances the device by 1 M-Cycle (4 T-Cycles).
	TickM()
}
