package cpu

// The hormiga register file: two general purpose registers, three flags and
// the program counter. Any other name is rejected by the banks.
const (
	RegR0             Register = "r0"
	RegR1             Register = "r1"
	RegStatus         Register = "s"
	RegOverflow       Register = "ovfl"
	RegUnderflow      Register = "udfl"
	RegProgramCounter Register = "pc"
)

// RegSize is the nominal register width. It bounds saturating arithmetic
// only; plain data movement is free to store wider values.
const RegSize Word = 256

// MachineRegisterNames returns every register name in dump order.
func MachineRegisterNames() []Register {
	return []Register{RegR0, RegR1, RegStatus, RegOverflow, RegUnderflow, RegProgramCounter}
}

// Snapshot is a copy of the register file at a point in time.
type Snapshot map[Register]Word

type Machine interface {
	GeneralRegisters() RegisterBank[Register, Word]
	FlagRegisters() RegisterBank[Register, Word]
	StateRegisters() RegisterBank[Register, Word]

	// Registers is the joined view of all three banks. Opcode handlers go
	// through this view exclusively.
	Registers() RegisterBank[Register, Word]

	Alu() SaturatingAlu[Register, Word]

	Reset() error
	Snapshot() (Snapshot, error)
}

type MachineSettings struct {
	RegisterSize Word
}

type MachineFactories struct {
	GeneralRegisters RegisterBankFactory[Register, Word]
	FlagRegisters    RegisterBankFactory[Register, Word]
	StateRegisters   RegisterBankFactory[Register, Word]
	Alu              SaturatingAluFactory[Register, Word]
}

type machine struct {
	generalRegisters RegisterBank[Register, Word]
	flagRegisters    RegisterBank[Register, Word]
	stateRegisters   RegisterBank[Register, Word]
	allRegisters     RegisterBank[Register, Word]
	alu              SaturatingAlu[Register, Word]
}

func MakeMachine(settings MachineSettings, factories MachineFactories) Machine {
	generalRegisters := factories.GeneralRegisters(RegR0, RegR1)
	flagRegisters := factories.FlagRegisters(RegStatus, RegOverflow, RegUnderflow)
	stateRegisters := factories.StateRegisters(RegProgramCounter)
	allRegisters := JoinRegisterBanks(generalRegisters, flagRegisters, stateRegisters)

	return &machine{
		generalRegisters: generalRegisters,
		flagRegisters:    flagRegisters,
		stateRegisters:   stateRegisters,
		allRegisters:     allRegisters,
		alu: factories.Alu(allRegisters, AluRegisters[Register]{
			Status:    RegStatus,
			Overflow:  RegOverflow,
			Underflow: RegUnderflow,
		}, settings.RegisterSize),
	}
}

// MakeDefaultMachine wires a machine with plain register banks and the
// saturating arithmetic unit at the standard width.
func MakeDefaultMachine() Machine {
	return MakeMachine(MachineSettings{
		RegisterSize: RegSize,
	}, MachineFactories{
		GeneralRegisters: MakeRegisters[Register, Word],
		FlagRegisters:    MakeRegisters[Register, Word],
		StateRegisters:   MakeRegisters[Register, Word],
		Alu:              MakeSaturatingAlu[Register, Word],
	})
}

func (m *machine) GeneralRegisters() RegisterBank[Register, Word] {
	return m.generalRegisters
}

func (m *machine) FlagRegisters() RegisterBank[Register, Word] {
	return m.flagRegisters
}

func (m *machine) StateRegisters() RegisterBank[Register, Word] {
	return m.stateRegisters
}

func (m *machine) Registers() RegisterBank[Register, Word] {
	return m.allRegisters
}

func (m *machine) Alu() SaturatingAlu[Register, Word] {
	return m.alu
}

func (m *machine) Reset() error {
	for _, r := range MachineRegisterNames() {
		if err := m.allRegisters.Write(Zero[Word](), r); err != nil {
			return err
		}
	}

	return nil
}

func (m *machine) Snapshot() (Snapshot, error) {
	snapshot := make(Snapshot, len(MachineRegisterNames()))

	for _, r := range MachineRegisterNames() {
		value, err := m.allRegisters.Read(r)

		if err != nil {
			return nil, err
		}

		snapshot[r] = value
	}

	return snapshot, nil
}
