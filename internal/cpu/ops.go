package cpu

import "github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"

func (c *CPU) execute(o Opcode) error {
	switch o.Op {
	case OpClear:
		c.screen.Clear()
	case OpReturn:
		addr, ok := c.stack.Pop()
		if !ok {
			return ErrStackUnderflow
		}
		c.PC = addr
	case OpJump:
		c.PC = o.NNN
	case OpCall:
		if c.stack.Len() >= StackDepth {
			return ErrStackOverflow
		}
		c.stack.Push(c.PC)
		c.PC = o.NNN

	case OpSkipEqImm:
		if c.V[o.X] == o.NN {
			c.skip()
		}
	case OpSkipNeImm:
		if c.V[o.X] != o.NN {
			c.skip()
		}
	case OpSkipEqReg:
		if c.V[o.X] == c.V[o.Y] {
			c.skip()
		}
	case OpSkipNeReg:
		if c.V[o.X] != c.V[o.Y] {
			c.skip()
		}

	case OpLoadImm:
		c.V[o.X] = o.NN
	case OpAddImm:
		c.V[o.X] += o.NN // wraps, VF untouched
	case OpMove:
		c.V[o.X] = c.V[o.Y]
	case OpOr:
		c.V[o.X] |= c.V[o.Y]
	case OpAnd:
		c.V[o.X] &= c.V[o.Y]
	case OpXor:
		c.V[o.X] ^= c.V[o.Y]
	case OpAdd:
		c.add(o.X, o.Y)
	case OpSub:
		c.sub(o.X, o.X, o.Y)
	case OpSubReverse:
		c.sub(o.X, o.Y, o.X)
	case OpShiftRight:
		c.shiftRight(o.X, o.Y)
	case OpShiftLeft:
		c.shiftLeft(o.X, o.Y)

	case OpLoadIndex:
		c.I = o.NNN
	case OpAddIndex:
		c.addIndex(o.X)
	case OpJumpOffset:
		c.jumpOffset(o)
	case OpRandom:
		c.V[o.X] = byte(c.rng.Intn(0x100)) & o.NN
	case OpDraw:
		c.draw(o.X, o.Y, o.N)

	case OpSkipKey:
		if c.keys[c.V[o.X]&0x0F] {
			c.skip()
		}
	case OpSkipNoKey:
		if !c.keys[c.V[o.X]&0x0F] {
			c.skip()
		}
	case OpWaitKey:
		c.waitKey(o.X)

	case OpGetDelay:
		c.V[o.X] = c.timer.Delay()
	case OpSetDelay:
		c.timer.SetDelay(c.V[o.X])
	case OpSetSound:
		c.timer.SetSound(c.V[o.X])

	case OpFont:
		c.I = memory.FontAddress(c.V[o.X])
	case OpDecimal:
		c.storeDecimal(c.V[o.X])
	case OpStore:
		c.store(o.X)
	case OpLoad:
		c.load(o.X)

	case OpMachineRoutine:
		return ErrMachineRoutine
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// add implements 8XY4. VF is the carry and is written after the result.
func (c *CPU) add(x, y byte) {
	sum := uint16(c.V[x]) + uint16(c.V[y])
	c.V[x] = byte(sum)
	c.setFlag(boolToByte(sum > 0xFF))
}

// sub stores V[a]-V[b] in V[dst]. VF is 1 when no borrow occurred.
func (c *CPU) sub(dst, a, b byte) {
	va, vb := c.V[a], c.V[b]
	c.V[dst] = va - vb
	c.setFlag(boolToByte(va >= vb))
}

func (c *CPU) shiftSource(x, y byte) byte {
	if c.quirks.Shift == ShiftFromVY {
		c.V[x] = c.V[y]
	}
	return c.V[x]
}

func (c *CPU) shiftRight(x, y byte) {
	v := c.shiftSource(x, y)
	c.V[x] = v >> 1
	c.setFlag(v & 0x01)
}

func (c *CPU) shiftLeft(x, y byte) {
	v := c.shiftSource(x, y)
	c.V[x] = v << 1
	c.setFlag(v >> 7)
}

// addIndex implements FX1E. With IndexOverflowFlag, VF is set when I leaves
// the 12-bit address space and left untouched otherwise.
func (c *CPU) addIndex(x byte) {
	sum := uint32(c.I) + uint32(c.V[x])
	if c.quirks.IndexOverflowFlag && sum > memory.Size-1 {
		c.setFlag(1)
	}
	c.I = uint16(sum)
}

func (c *CPU) jumpOffset(o Opcode) {
	reg := byte(0)
	if c.quirks.JumpOffset == JumpOffsetVX {
		reg = o.X
	}
	c.PC = o.NNN + uint16(c.V[reg])
}

func (c *CPU) draw(x, y, n byte) {
	px, py := c.V[x], c.V[y]
	rows := make([]byte, n)
	for i := range rows {
		rows[i] = c.mem.Read(c.I + uint16(i))
	}
	c.setFlag(0)
	if c.screen.DrawSprite(px, py, rows) {
		c.setFlag(1)
	}
}

// waitKey implements FX0A. It completes only on a key release seen between
// the last two snapshots; otherwise PC is rewound so the driver runs it again.
func (c *CPU) waitKey(x byte) {
	for k := 0; k < NumKeys; k++ {
		if c.prevKeys[k] && !c.keys[k] {
			c.V[x] = byte(k)
			return
		}
	}
	c.repeat()
}

// storeDecimal writes the decimal digits of v at I, most significant first,
// one byte per digit and no leading zeros.
func (c *CPU) storeDecimal(v byte) {
	var digits []byte
	switch {
	case v >= 100:
		digits = []byte{v / 100, v / 10 % 10, v % 10}
	case v >= 10:
		digits = []byte{v / 10, v % 10}
	default:
		digits = []byte{v}
	}
	for i, d := range digits {
		c.mem.Write(c.I+uint16(i), d)
	}
}

func (c *CPU) store(last byte) {
	for i := 0; i <= int(last); i++ {
		c.mem.Write(c.I+uint16(i), c.V[i])
	}
	c.advanceIndex(last)
}

func (c *CPU) load(last byte) {
	for i := 0; i <= int(last); i++ {
		c.V[i] = c.mem.Read(c.I + uint16(i))
	}
	c.advanceIndex(last)
}

func (c *CPU) advanceIndex(last byte) {
	if c.quirks.LoadStore == LoadStoreIncrementIndex {
		c.I += uint16(last) + 1
	}
}
