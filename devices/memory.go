package devices

// Memory defines the system's memory bus as seen by a peripheral.
type Memory interface {
	// Read returns the byte at the given address.
	Read(addr uint16) byte

	// Write sets the byte at the given address.
	Write(addr uint16, value byte)
}
