package cpu

import (
	"errors"
)

type RegisterName interface {
	comparable
}

type RegisterIndex[Register RegisterName, Type Number] interface {
	Get(r Register) (*Type, error)
}

type RegisterBank[Register RegisterName, Type Number] interface {
	Read(r Register) (Type, error)
	Write(value Type, r Register) error
}

type RegisterBankFactory[Register RegisterName, Type Number] func(registers ...Register) RegisterBank[Register, Type]

type registerBankFromIndex[Register RegisterName, Type Number] struct {
	index RegisterIndex[Register, Type]
}

func MakeRegisterBank[Register RegisterName, Type Number](index RegisterIndex[Register, Type]) RegisterBank[Register, Type] {
	return &registerBankFromIndex[Register, Type]{
		index: index,
	}
}

func (b *registerBankFromIndex[Register, Type]) Read(r Register) (Type, error) {
	reg, err := b.index.Get(r)

	if err != nil {
		return 0, err
	}

	return *reg, nil
}

func (b *registerBankFromIndex[Register, Type]) Write(value Type, r Register) error {
	reg, err := b.index.Get(r)

	if err != nil {
		return err
	}

	*reg = value

	return nil
}

type registers[Register RegisterName, Type Number] struct {
	rs map[Register]*Type
}

func MakeRegisters[Register RegisterName, Type Number](usedRegisters ...Register) RegisterBank[Register, Type] {
	rs := make(map[Register]*Type, len(usedRegisters))

	for _, r := range usedRegisters {
		rs[r] = new(Type)
	}

	return MakeRegisterBank[Register, Type](&registers[Register, Type]{
		rs: rs,
	})
}

func (rs *registers[Register, Type]) Get(r Register) (*Type, error) {
	if ptr, contains := rs.rs[r]; contains {
		return ptr, nil
	} else {
		return nil, MakeError(ErrUnknownRegister, "'%v'", r)
	}
}

type joinedRegisterBanks[Register RegisterName, Type Number] struct {
	banks []RegisterBank[Register, Type]
}

func (rs *joinedRegisterBanks[Register, Type]) Read(r Register) (Type, error) {
	for _, bank := range rs.banks {
		if value, err := bank.Read(r); err != nil {
			if errors.Is(err, ErrUnknownRegister) {
				continue
			} else {
				return 0, err
			}
		} else {
			return value, nil
		}
	}

	return 0, MakeError(ErrUnknownRegister, "'%v'", r)
}

func (rs *joinedRegisterBanks[Register, Type]) Write(value Type, r Register) error {
	for _, bank := range rs.banks {
		if err := bank.Write(value, r); err != nil {
			if errors.Is(err, ErrUnknownRegister) {
				continue
			} else {
				return err
			}
		} else {
			return nil
		}
	}

	return MakeError(ErrUnknownRegister, "'%v'", r)
}

func JoinRegisterBanks[Register RegisterName, Type Number](banks ...RegisterBank[Register, Type]) RegisterBank[Register, Type] {
	return &joinedRegisterBanks[Register, Type]{
		banks: banks,
	}
}

// RegisterTraceFunc observes every register access going through a traced
// bank. op is "read" or "write".
type RegisterTraceFunc[Register RegisterName, Type Number] func(op string, r Register, value Type, err error)

type tracedRegisterBank[Register RegisterName, Type Number] struct {
	inner RegisterBank[Register, Type]
	trace RegisterTraceFunc[Register, Type]
}

func TraceRegisterBank[Register RegisterName, Type Number](inner RegisterBank[Register, Type], trace RegisterTraceFunc[Register, Type]) RegisterBank[Register, Type] {
	return &tracedRegisterBank[Register, Type]{
		inner: inner,
		trace: trace,
	}
}

func TracedRegisterBankFactory[Register RegisterName, Type Number](factory RegisterBankFactory[Register, Type], trace RegisterTraceFunc[Register, Type]) RegisterBankFactory[Register, Type] {
	return func(usedRegisters ...Register) RegisterBank[Register, Type] {
		return TraceRegisterBank(factory(usedRegisters...), trace)
	}
}

func (b *tracedRegisterBank[Register, Type]) Read(r Register) (Type, error) {
	value, err := b.inner.Read(r)
	b.trace("read", r, value, err)
	return value, err
}

func (b *tracedRegisterBank[Register, Type]) Write(value Type, r Register) error {
	err := b.inner.Write(value, r)
	b.trace("write", r, value, err)
	return err
}
