package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies one operation of the instruction set.
type Kind int

// Operation kinds, one per opcode class of the dispatch table.
const (
	ClearScreen Kind = iota // 00E0
	Return                  // 00EE
	Jump                    // 1nnn
	Call                    // 2nnn
	SkipEqImm               // 3xkk
	SkipNeImm               // 4xkk
	SkipEqReg               // 5xy0
	LoadImm                 // 6xkk
	AddImm                  // 7xkk
	LoadReg                 // 8xy0
	Or                      // 8xy1
	And                     // 8xy2
	Xor                     // 8xy3
	AddReg                  // 8xy4
	SubReg                  // 8xy5
	ShiftRight              // 8xy6
	SubNeg                  // 8xy7
	ShiftLeft               // 8xyE
	SkipNeReg               // 9xy0
	LoadIndex               // Annn
	JumpOffset              // Bnnn
	Random                  // Cxkk
	Draw                    // Dxyn
	SkipKey                 // Ex9E
	SkipNoKey               // ExA1
	LoadDelay               // Fx07
	WaitKey                 // Fx0A
	SetDelay                // Fx15
	SetSound                // Fx18
	AddIndex                // Fx1E
	LoadFont                // Fx29
	StoreBCD                // Fx33
	StoreRegs               // Fx55
	LoadRegs                // Fx65
)

// Instruction is the decoded form of one opcode word: the operation
// kind plus all operand fields extracted by fixed bit masks. Decoding
// happens before execution, so handlers never touch raw bit patterns.
type Instruction struct {
	Kind Kind

	Word uint16 // the raw opcode word
	X    byte   // second nibble, register index
	Y    byte   // third nibble, register index
	N    byte   // lowest nibble
	KK   byte   // lowest byte
	NNN  uint16 // lowest 12 bits, an address
}

// aluKinds maps the low nibble of the 8xyN opcode group.
var aluKinds = map[byte]Kind{
	0x0: LoadReg,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddReg,
	0x5: SubReg,
	0x6: ShiftRight,
	0x7: SubNeg,
	0xE: ShiftLeft,
}

// miscKinds maps the low byte of the FxKK opcode group.
var miscKinds = map[byte]Kind{
	0x07: LoadDelay,
	0x0A: WaitKey,
	0x15: SetDelay,
	0x18: SetSound,
	0x1E: AddIndex,
	0x29: LoadFont,
	0x33: StoreBCD,
	0x55: StoreRegs,
	0x65: LoadRegs,
}

// Decode interprets a 16 bit opcode word. An unrecognized word returns
// ErrUnknownInstruction wrapped with the offending word.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		Word: word,
		X:    byte(word >> 8 & 0x0F),
		Y:    byte(word >> 4 & 0x0F),
		N:    byte(word & 0x0F),
		KK:   byte(word & 0xFF),
		NNN:  word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			ins.Kind = ClearScreen
		case 0x00EE:
			ins.Kind = Return
		default:
			// 0nnn machine code routines are not supported
			return ins, unknownWord(word)
		}

	case 0x1:
		ins.Kind = Jump
	case 0x2:
		ins.Kind = Call
	case 0x3:
		ins.Kind = SkipEqImm
	case 0x4:
		ins.Kind = SkipNeImm

	case 0x5:
		if ins.N != 0 {
			return ins, unknownWord(word)
		}
		ins.Kind = SkipEqReg

	case 0x6:
		ins.Kind = LoadImm
	case 0x7:
		ins.Kind = AddImm

	case 0x8:
		kind, ok := aluKinds[ins.N]
		if !ok {
			return ins, unknownWord(word)
		}
		ins.Kind = kind

	case 0x9:
		if ins.N != 0 {
			return ins, unknownWord(word)
		}
		ins.Kind = SkipNeReg

	case 0xA:
		ins.Kind = LoadIndex
	case 0xB:
		ins.Kind = JumpOffset
	case 0xC:
		ins.Kind = Random
	case 0xD:
		ins.Kind = Draw

	case 0xE:
		switch ins.KK {
		case 0x9E:
			ins.Kind = SkipKey
		case 0xA1:
			ins.Kind = SkipNoKey
		default:
			return ins, unknownWord(word)
		}

	case 0xF:
		kind, ok := miscKinds[ins.KK]
		if !ok {
			return ins, unknownWord(word)
		}
		ins.Kind = kind
	}

	return ins, nil
}

func unknownWord(word uint16) error {
	return fmt.Errorf("%w: opcode %04X", ErrUnknownInstruction, word)
}

// mnemonics maps each kind to its instruction definition from the
// shared CHIP-8 architecture tables.
var mnemonics = map[Kind]*chip8.Instruction{
	ClearScreen: chip8.ClsInst,
	Return:      chip8.RetInst,
	Jump:        chip8.JpInst,
	Call:        chip8.CallInst,
	SkipEqImm:   chip8.SeInst,
	SkipNeImm:   chip8.SneInst,
	SkipEqReg:   chip8.SeInst,
	LoadImm:     chip8.LdInst,
	AddImm:      chip8.AddInst,
	LoadReg:     chip8.LdInst,
	Or:          chip8.OrInst,
	And:         chip8.AndInst,
	Xor:         chip8.XorInst,
	AddReg:      chip8.AddInst,
	SubReg:      chip8.SubInst,
	ShiftRight:  chip8.ShrInst,
	SubNeg:      chip8.SubnInst,
	ShiftLeft:   chip8.ShlInst,
	SkipNeReg:   chip8.SneInst,
	LoadIndex:   chip8.LdInst,
	JumpOffset:  chip8.JpInst,
	Random:      chip8.RndInst,
	Draw:        chip8.DrwInst,
	SkipKey:     chip8.SkpInst,
	SkipNoKey:   chip8.SknpInst,
	LoadDelay:   chip8.LdInst,
	WaitKey:     chip8.LdInst,
	SetDelay:    chip8.LdInst,
	SetSound:    chip8.LdInst,
	AddIndex:    chip8.AddInst,
	LoadFont:    chip8.LdInst,
	StoreBCD:    chip8.LdInst,
	StoreRegs:   chip8.LdInst,
	LoadRegs:    chip8.LdInst,
}

// Name returns the assembler mnemonic of the instruction.
func (i Instruction) Name() string {
	ins, ok := mnemonics[i.Kind]
	if !ok {
		return "???"
	}
	return ins.Name
}

// String formats the instruction with its operands, for logging.
func (i Instruction) String() string {
	name := i.Name()

	switch i.Kind {
	case ClearScreen, Return:
		return name
	case Jump, Call:
		return fmt.Sprintf("%s $%03X", name, i.NNN)
	case LoadIndex:
		return fmt.Sprintf("%s I, $%03X", name, i.NNN)
	case JumpOffset:
		return fmt.Sprintf("%s V0, $%03X", name, i.NNN)
	case SkipEqImm, SkipNeImm, LoadImm, AddImm, Random:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case SkipEqReg, SkipNeReg, LoadReg, Or, And, Xor, AddReg, SubReg, SubNeg:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case ShiftRight, ShiftLeft, SkipKey, SkipNoKey:
		return fmt.Sprintf("%s V%X", name, i.X)
	case Draw:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, i.X, i.Y, i.N)
	case LoadDelay:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case WaitKey:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case SetDelay:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case SetSound:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case AddIndex:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case LoadFont:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case StoreBCD:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case StoreRegs:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case LoadRegs:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	}
	return name
}
