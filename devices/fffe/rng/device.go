// Package rng implements a memory mapped random number source.
//
// After every executed instruction the device stores a fresh pseudo random
// byte at Address, so a program can read it with a plain LDA $fe.
package rng

import (
	"math/rand"
	"time"

	"github.com/hexaflex/px65/devices"
)

// Address is the memory location holding the current random byte.
const Address = 0x00fe

// Device defines the random number source.
type Device struct {
	seed int64
	src  *rand.Rand
}

var _ devices.Device = &Device{}
var _ devices.Ticker = &Device{}

// New creates a new device with the given seed. A seed of 0 selects
// a time based seed on every Startup.
func New(seed int64) *Device {
	return &Device{seed: seed}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(0xfffe, 0x0005)
}

// Seed returns the seed used by the current session.
func (d *Device) Seed() int64 {
	return d.seed
}

// Startup seeds the generator.
func (d *Device) Startup() error {
	d.Reseed(d.seed)
	return nil
}

// Shutdown releases the generator.
func (d *Device) Shutdown() error {
	d.src = nil
	return nil
}

// Reseed restarts the byte sequence from the given seed.
func (d *Device) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d.seed = seed
	d.src = rand.New(rand.NewSource(seed))
}

// Tick stores the next random byte in memory.
func (d *Device) Tick(mem devices.Memory) {
	if d.src == nil {
		return
	}
	mem.Write(Address, byte(d.src.Intn(256)))
}
