package cpu

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Sizeof[Type Number]() int {
	return int(unsafe.Sizeof(Type(0)))
}

// Word is the value type stored in every hormiga register.
type Word = int

// Register is the name of a register slot.
type Register = string
