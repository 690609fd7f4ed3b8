package cpu

import (
	"golang.org/x/exp/constraints"
)

func Zero[Type Number]() Type {
	return 0
}

func One[Type Number]() Type {
	return 1
}

func True[Type Number]() Type {
	return One[Type]()
}

func False[Type Number]() Type {
	return Zero[Type]()
}

// SaturatingAlu implements the hormiga arithmetic unit: additions and
// subtractions saturate at the register width bounds, raising the sticky
// overflow/underflow flags, and comparisons store their boolean result in the
// status register. Flags are only ever raised by the unit, never cleared.
type SaturatingAlu[Register RegisterName, Type constraints.Integer] interface {
	Add(src Type, dst Register) error
	Sub(src Type, dst Register) error
	Equal(lhs Type, rhs Type) error
	Greater(lhs Type, rhs Type) error
	Less(lhs Type, rhs Type) error
}

type SaturatingAluFactory[Register RegisterName, Type constraints.Integer] func(rs RegisterBank[Register, Type], flags AluRegisters[Register], limit Type) SaturatingAlu[Register, Type]

// AluRegisters names the flag registers written by the unit.
type AluRegisters[Register RegisterName] struct {
	Status    Register
	Overflow  Register
	Underflow Register
}

type saturatingAlu[Register RegisterName, Type constraints.Integer] struct {
	rs    RegisterBank[Register, Type]
	flags AluRegisters[Register]
	limit Type
}

func MakeSaturatingAlu[Register RegisterName, Type constraints.Integer](rs RegisterBank[Register, Type], flags AluRegisters[Register], limit Type) SaturatingAlu[Register, Type] {
	return &saturatingAlu[Register, Type]{
		rs:    rs,
		flags: flags,
		limit: limit,
	}
}

func (u *saturatingAlu[Register, Type]) Add(src Type, dst Register) error {
	current, err := u.rs.Read(dst)

	if err != nil {
		return err
	}

	sum := src + current

	if sum >= u.limit {
		sum = u.limit - 1

		if err := u.rs.Write(True[Type](), u.flags.Overflow); err != nil {
			return err
		}
	}

	return u.rs.Write(sum, dst)
}

func (u *saturatingAlu[Register, Type]) Sub(src Type, dst Register) error {
	current, err := u.rs.Read(dst)

	if err != nil {
		return err
	}

	diff := current - src

	if diff < 0 {
		diff = 0

		if err := u.rs.Write(True[Type](), u.flags.Underflow); err != nil {
			return err
		}
	}

	return u.rs.Write(diff, dst)
}

func (u *saturatingAlu[Register, Type]) compare(result bool) error {
	if result {
		return u.rs.Write(True[Type](), u.flags.Status)
	}

	return u.rs.Write(False[Type](), u.flags.Status)
}

func (u *saturatingAlu[Register, Type]) Equal(lhs Type, rhs Type) error {
	return u.compare(lhs == rhs)
}

func (u *saturatingAlu[Register, Type]) Greater(lhs Type, rhs Type) error {
	return u.compare(lhs > rhs)
}

func (u *saturatingAlu[Register, Type]) Less(lhs Type, rhs Type) error {
	return u.compare(lhs < rhs)
}
