package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// isFlagsSet returns true if all the given flags are set.
func (c *CPU) isFlagsSet(flags ...Flag) bool {
	for _, flag := range flags {
		if !c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// isFlagsNotSet returns true if none of the given flags are set.
func (c *CPU) isFlagsNotSet(flags ...Flag) bool {
	for _, flag := range flags {
		if c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// setFlags sets every flag at once, leaving the low nibble of F clear.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.F |= 1 << FlagZero
	}
	if subtract {
		c.F |= 1 << FlagSubtract
	}
	if halfCarry {
		c.F |= 1 << FlagHalfCarry
	}
	if carry {
		c.F |= 1 << FlagCarry
	}
}

// carryBit returns the carry flag as 0 or 1.
func (c *CPU) carryBit() uint8 {
	return (c.F >> FlagCarry) & 1
}

// condition evaluates the cc field of a conditional jump, call
// or return: NZ, Z, NC, C.
func (c *CPU) condition(cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}
