package cpu

// Op identifies one decoded instruction.
type Op uint8

const (
	OpUnknown        Op = iota
	OpMachineRoutine    // 0NNN
	OpClear             // 00E0
	OpReturn            // 00EE
	OpJump              // 1NNN
	OpCall              // 2NNN
	OpSkipEqImm         // 3XNN
	OpSkipNeImm         // 4XNN
	OpSkipEqReg         // 5XY0
	OpLoadImm           // 6XNN
	OpAddImm            // 7XNN
	OpMove              // 8XY0
	OpOr                // 8XY1
	OpAnd               // 8XY2
	OpXor               // 8XY3
	OpAdd               // 8XY4
	OpSub               // 8XY5
	OpShiftRight        // 8XY6
	OpSubReverse        // 8XY7
	OpShiftLeft         // 8XYE
	OpSkipNeReg         // 9XY0
	OpLoadIndex         // ANNN
	OpJumpOffset        // BNNN
	OpRandom            // CXNN
	OpDraw              // DXYN
	OpSkipKey           // EX9E
	OpSkipNoKey         // EXA1
	OpGetDelay          // FX07
	OpWaitKey           // FX0A
	OpSetDelay          // FX15
	OpSetSound          // FX18
	OpAddIndex          // FX1E
	OpFont              // FX29
	OpDecimal           // FX33
	OpStore             // FX55
	OpLoad              // FX65
)

var opNames = [...]string{
	OpUnknown:        "???",
	OpMachineRoutine: "SYS",
	OpClear:          "CLS",
	OpReturn:         "RET",
	OpJump:           "JP",
	OpCall:           "CALL",
	OpSkipEqImm:      "SE",
	OpSkipNeImm:      "SNE",
	OpSkipEqReg:      "SE",
	OpLoadImm:        "LD",
	OpAddImm:         "ADD",
	OpMove:           "LD",
	OpOr:             "OR",
	OpAnd:            "AND",
	OpXor:            "XOR",
	OpAdd:            "ADD",
	OpSub:            "SUB",
	OpShiftRight:     "SHR",
	OpSubReverse:     "SUBN",
	OpShiftLeft:      "SHL",
	OpSkipNeReg:      "SNE",
	OpLoadIndex:      "LD I",
	OpJumpOffset:     "JP V0",
	OpRandom:         "RND",
	OpDraw:           "DRW",
	OpSkipKey:        "SKP",
	OpSkipNoKey:      "SKNP",
	OpGetDelay:       "LD DT",
	OpWaitKey:        "LD K",
	OpSetDelay:       "SET DT",
	OpSetSound:       "SET ST",
	OpAddIndex:       "ADD I",
	OpFont:           "LD F",
	OpDecimal:        "LD B",
	OpStore:          "LD [I]",
	OpLoad:           "LD V",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Opcode is an instruction word split into its operand fields.
// Which fields are meaningful depends on Op.
type Opcode struct {
	Op   Op
	Word uint16
	X    byte   // second nibble, register index
	Y    byte   // third nibble, register index
	N    byte   // low nibble
	NN   byte   // low byte
	NNN  uint16 // low 12 bits, address
}

// Decode maps an instruction word to its operation. It never fails;
// unrecognised words decode to OpUnknown.
func Decode(word uint16) Opcode {
	o := Opcode{
		Word: word,
		X:    byte(word>>8) & 0x0F,
		Y:    byte(word>>4) & 0x0F,
		N:    byte(word) & 0x0F,
		NN:   byte(word),
		NNN:  word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		switch o.NNN {
		case 0x0E0:
			o.Op = OpClear
		case 0x0EE:
			o.Op = OpReturn
		default:
			o.Op = OpMachineRoutine
		}
	case 0x1:
		o.Op = OpJump
	case 0x2:
		o.Op = OpCall
	case 0x3:
		o.Op = OpSkipEqImm
	case 0x4:
		o.Op = OpSkipNeImm
	case 0x5:
		o.Op = OpSkipEqReg
	case 0x6:
		o.Op = OpLoadImm
	case 0x7:
		o.Op = OpAddImm
	case 0x8:
		o.Op = decodeALU(o.N)
	case 0x9:
		o.Op = OpSkipNeReg
	case 0xA:
		o.Op = OpLoadIndex
	case 0xB:
		o.Op = OpJumpOffset
	case 0xC:
		o.Op = OpRandom
	case 0xD:
		o.Op = OpDraw
	case 0xE:
		switch o.NN {
		case 0x9E:
			o.Op = OpSkipKey
		case 0xA1:
			o.Op = OpSkipNoKey
		}
	case 0xF:
		o.Op = decodeMisc(o.NN)
	}
	return o
}

func decodeALU(n byte) Op {
	switch n {
	case 0x0:
		return OpMove
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAdd
	case 0x5:
		return OpSub
	case 0x6:
		return OpShiftRight
	case 0x7:
		return OpSubReverse
	case 0xE:
		return OpShiftLeft
	}
	return OpUnknown
}

func decodeMisc(nn byte) Op {
	switch nn {
	case 0x07:
		return OpGetDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpFont
	case 0x33:
		return OpDecimal
	case 0x55:
		return OpStore
	case 0x65:
		return OpLoad
	}
	return OpUnknown
}
