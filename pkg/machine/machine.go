// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gohack/pkg/encoding"
)

func (mc *MachineState) Reset() {
	mc.A = 0x0000
	mc.D = 0x0000
	mc.Program = 0x0000
	mc.Halted = false

	for i := range mc.RAM {
		mc.RAM[i] = 0x0000
	}
}

// LoadHack resets the machine and loads a .hack program, one 16-digit
// binary word per line, into ROM starting at address 0.
func (mc *Machine) LoadHack(reader io.Reader) error {
	mc.State.Reset()

	for i := range mc.State.ROM {
		mc.State.ROM[i] = 0x0000
	}

	mc.State.Size = 0

	scanner := bufio.NewScanner(reader)
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())

		if len(text) == 0 {
			continue
		}

		if int(mc.State.Size) >= ROM_SIZE {
			return errors.New("Binary exceeds ROM size")
		}

		word, err := encoding.DecodeWord(text)

		if err != nil {
			return fmt.Errorf("%02d: %w", line, err)
		}

		mc.State.ROM[mc.State.Size] = word
		mc.State.Size++
	}

	return scanner.Err()
}

func (mc *Machine) read(addr uint16) uint16 {
	if int(addr) >= RAM_SIZE {
		return 0
	}

	if addr == MEMSPACE_KBD {
		var key byte
		var err error

		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			key, err = mc.Devices.Keyboard.ReadByte()
			if err != nil && err != io.EOF {
				panic(err)
			}
		} else {
			err = io.EOF
		}

		if err != io.EOF {
			mc.State.RAM[MEMSPACE_KBD] = translateKey(key)
		} else {
			mc.State.RAM[MEMSPACE_KBD] = KEY_NONE
		}
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.RAM[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	// The keyboard register is read-only
	if int(addr) >= RAM_SIZE || addr == MEMSPACE_KBD {
		return
	}

	mc.State.RAM[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

func translateKey(key byte) uint16 {
	switch key {
	case '\r', '\n':
		return KEY_NEWLINE
	case 0x7F, 0x08:
		return KEY_BACKSPACE
	}

	return uint16(key)
}

func compute(instruction, x, y uint16) uint16 {
	if instruction&BIT_ZX != 0 {
		x = 0
	}

	if instruction&BIT_NX != 0 {
		x = ^x
	}

	if instruction&BIT_ZY != 0 {
		y = 0
	}

	if instruction&BIT_NY != 0 {
		y = ^y
	}

	var out uint16

	if instruction&BIT_F != 0 {
		out = x + y
	} else {
		out = x & y
	}

	if instruction&BIT_NO != 0 {
		out = ^out
	}

	return out
}

func shouldJump(instruction, out uint16) bool {
	value := int16(out)

	return (instruction&BIT_JLT != 0 && value < 0) ||
		(instruction&BIT_JEQ != 0 && value == 0) ||
		(instruction&BIT_JGT != 0 && value > 0)
}

// isHaltLoop reports whether jumping from pc to target re-enters the
// canonical "(END) @END 0;JMP" loop that Hack programs end with.
func (mc *MachineState) isHaltLoop(pc, target uint16) bool {
	if target == pc {
		return true
	}

	if int(target) >= ROM_SIZE {
		return false
	}

	return target+1 == pc && mc.ROM[target] == target
}

func (mc *Machine) Step() {
	if mc.State.Halted {
		return
	}

	pc := mc.State.Program

	if pc >= mc.State.Size {
		mc.State.Halted = true
		return
	}

	instruction := mc.State.ROM[pc]

	mc.State.Program++

	// A    |0|value                          | Load address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	if instruction&BIT_COMPUTE == 0 {
		mc.State.A = instruction
	} else {
		// C    |1 1 1|a|c1..c6     |d1..d3|j1..j3| Compute
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		addr := mc.State.A

		var y uint16
		if instruction&BIT_A != 0 {
			y = mc.read(addr)
		} else {
			y = addr
		}

		out := compute(instruction, mc.State.D, y)

		if instruction&BIT_DEST_M != 0 {
			mc.write(addr, out)
		}

		if instruction&BIT_DEST_A != 0 {
			mc.State.A = out
		}

		if instruction&BIT_DEST_D != 0 {
			mc.State.D = out
		}

		if shouldJump(instruction, out) {
			mc.State.Program = addr

			if mc.State.isHaltLoop(pc, addr) {
				mc.State.Halted = true
			}
		}
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}
}

// Run steps the machine until it halts or cycles instructions have been
// executed. A limit of zero means no limit. It returns the number of steps
// taken.
func (mc *Machine) Run(cycles uint64) uint64 {
	var count uint64

	for !mc.State.Halted && (cycles == 0 || count < cycles) {
		mc.Step()
		count++
	}

	return count
}
