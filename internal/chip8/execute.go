package chip8

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/memory"
)

// execute dispatches one decoded instruction to its handler. The
// program counter already points past the instruction; branching
// handlers overwrite it, skip handlers advance it once more.
func (in *Interpreter) execute(ins Instruction) error {
	switch ins.Kind {
	case ClearScreen:
		in.screen.Clear()

	case Return:
		if in.sp == 0 {
			return fmt.Errorf("%w: return at %04X", ErrStackUnderflow, in.pc-2)
		}
		in.sp--
		in.pc = in.stack[in.sp]

	case Jump:
		in.pc = ins.NNN

	case Call:
		if in.sp == StackSize {
			return fmt.Errorf("%w: call at %04X", ErrStackOverflow, in.pc-2)
		}
		in.stack[in.sp] = in.pc
		in.sp++
		in.pc = ins.NNN

	case SkipEqImm:
		if in.v[ins.X] == ins.KK {
			return in.advancePC()
		}

	case SkipNeImm:
		if in.v[ins.X] != ins.KK {
			return in.advancePC()
		}

	case SkipEqReg:
		if in.v[ins.X] == in.v[ins.Y] {
			return in.advancePC()
		}

	case LoadImm:
		in.v[ins.X] = ins.KK

	case AddImm:
		// wraps modulo 256 without touching the flag register
		in.v[ins.X] += ins.KK

	case LoadReg:
		in.v[ins.X] = in.v[ins.Y]

	case Or:
		in.v[ins.X] |= in.v[ins.Y]

	case And:
		in.v[ins.X] &= in.v[ins.Y]

	case Xor:
		in.v[ins.X] ^= in.v[ins.Y]

	case AddReg:
		sum := uint16(in.v[ins.X]) + uint16(in.v[ins.Y])
		in.v[ins.X] = byte(sum)
		// the flag write comes last so that VF as destination holds
		// the carry, not the truncated sum
		in.v[flagRegister] = byte(sum >> 8)

	case SubReg:
		noBorrow := in.v[ins.X] >= in.v[ins.Y]
		in.v[ins.X] -= in.v[ins.Y]
		in.v[flagRegister] = flagValue(noBorrow)

	case SubNeg:
		noBorrow := in.v[ins.Y] >= in.v[ins.X]
		in.v[ins.X] = in.v[ins.Y] - in.v[ins.X]
		in.v[flagRegister] = flagValue(noBorrow)

	case ShiftRight:
		src := in.shiftSource(ins)
		in.v[ins.X] = src >> 1
		in.v[flagRegister] = src & 0x01

	case ShiftLeft:
		src := in.shiftSource(ins)
		in.v[ins.X] = src << 1
		in.v[flagRegister] = src >> 7

	case SkipNeReg:
		if in.v[ins.X] != in.v[ins.Y] {
			return in.advancePC()
		}

	case LoadIndex:
		in.index = ins.NNN

	case JumpOffset:
		offset := in.v[0]
		if in.quirks.JumpOffsetVX {
			offset = in.v[ins.X]
		}
		in.pc = (ins.NNN + uint16(offset)) & memory.AddressMask

	case Random:
		in.v[ins.X] = byte(in.rng.Intn(256)) & ins.KK

	case Draw:
		sprite := in.mem.ReadRange(in.index, uint16(ins.N))
		collision := in.screen.Draw(sprite, in.v[ins.X], in.v[ins.Y])
		in.v[flagRegister] = flagValue(collision)

	case SkipKey:
		if in.keys.IsDown(in.v[ins.X]) {
			return in.advancePC()
		}

	case SkipNoKey:
		if !in.keys.IsDown(in.v[ins.X]) {
			return in.advancePC()
		}

	case LoadDelay:
		in.v[ins.X] = in.timers.Delay()

	case WaitKey:
		// suspend the cycle; the driver resumes via ResumeKey on the
		// next press edge while timers keep ticking
		in.awaitingKey = true
		in.waitReg = ins.X
		in.keys.DropPresses()

	case SetDelay:
		in.timers.SetDelay(in.v[ins.X])

	case SetSound:
		in.timers.SetSound(in.v[ins.X])

	case AddIndex:
		in.index += uint16(in.v[ins.X])
		if in.index > memory.AddressMask {
			in.index &= memory.AddressMask
			if in.quirks.IndexOverflowFlag {
				in.v[flagRegister] = 1
			}
		}

	case LoadFont:
		in.index = memory.FontAddress(in.v[ins.X])

	case StoreBCD:
		value := in.v[ins.X]
		in.mem.WriteRange(in.index, []byte{
			value / 100,
			value / 10 % 10,
			value % 10,
		})

	case StoreRegs:
		in.mem.WriteRange(in.index, in.v[:ins.X+1])
		in.advanceIndex(ins.X)

	case LoadRegs:
		copy(in.v[:ins.X+1], in.mem.ReadRange(in.index, uint16(ins.X)+1))
		in.advanceIndex(ins.X)
	}

	return nil
}

// shiftSource returns the register value a shift operates on, which
// differed between machine generations.
func (in *Interpreter) shiftSource(ins Instruction) byte {
	if in.quirks.ShiftSourceX {
		return in.v[ins.X]
	}
	return in.v[ins.Y]
}

// advanceIndex moves the index register past a transferred register
// range when the machine variant did so.
func (in *Interpreter) advanceIndex(x byte) {
	if in.quirks.IndexAdvance {
		in.index = (in.index + uint16(x) + 1) & memory.AddressMask
	}
}

func flagValue(set bool) byte {
	if set {
		return 1
	}
	return 0
}
