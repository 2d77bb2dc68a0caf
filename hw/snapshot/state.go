// Package snapshot holds the serializable state of a machine.
package snapshot

// Version of the snapshot format.
const Version = 1

type Machine struct {
	Version int
	CPU     *CPU
	Mem     []Region
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles int64

	NMIPending bool
	IRQLatch   bool
	IRQLines   uint8
}

// Region is the content of a writable memory region.
type Region struct {
	Name string
	Data []byte
}
