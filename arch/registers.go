package arch

import "strings"

// Register indices.
const (
	RegA = iota
	RegX
	RegY
	RegSP
	RegPC
	RegP
)

// RegisterIndex returns the index for the given register.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	switch strings.ToLower(name) {
	case "a":
		return RegA
	case "x":
		return RegX
	case "y":
		return RegY
	case "sp", "s":
		return RegSP
	case "pc":
		return RegPC
	case "p":
		return RegP
	}
	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	switch n {
	case RegA:
		return "A"
	case RegX:
		return "X"
	case RegY:
		return "Y"
	case RegSP:
		return "SP"
	case RegPC:
		return "PC"
	case RegP:
		return "P"
	}
	return ""
}

// FlagNames holds the status flag names, from bit 7 down to bit 0.
const FlagNames = "NV-BDIZC"
