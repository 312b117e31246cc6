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

package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lassandro/gohack/pkg/machine"
)

func (dbg *Debugger) output() io.Writer {
	if dbg.Output == nil {
		return os.Stdout
	}

	return dbg.Output
}

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if mc.State.Program == breakpoint.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

// LookupLabel returns the ROM address of a label from the debug table
func (dbg *Debugger) LookupLabel(name string) (uint16, bool) {
	if dbg.DebugTable == nil {
		return 0, false
	}

	addr, found := dbg.DebugTable.Labels[name]
	return addr, found
}

// LookupVariable returns the RAM address of a variable from the debug table
func (dbg *Debugger) LookupVariable(name string) (uint16, bool) {
	if dbg.DebugTable == nil {
		return 0, false
	}

	for addr, variable := range dbg.DebugTable.Variables {
		if variable == name {
			return addr, true
		}
	}

	return 0, false
}

func (dbg *Debugger) PrintSource(addr uint16, count uint16) {
	out := dbg.output()

	if dbg.Source == nil {
		fmt.Fprintln(out, "No source file loaded")
		return
	}

	if dbg.DebugTable == nil {
		fmt.Fprintln(out, "No debug table loaded")
		return
	}

	offset, exists := dbg.DebugTable.Lines[addr]

	if !exists {
		fmt.Fprintf(out, "No instruction found at %#04x\n", addr)
		return
	}

	if _, err := dbg.Source.Seek(offset, io.SeekStart); err != nil {
		panic(err)
	}

	lines := make(map[int64]uint16, len(dbg.DebugTable.Lines))
	for lineaddr, linebyte := range dbg.DebugTable.Lines {
		lines[linebyte] = lineaddr
	}

	reader := bufio.NewReader(dbg.Source)

	for i := uint16(0); i < count; i++ {
		text, err := reader.ReadString('\n')

		if len(text) == 0 {
			if err != nil && err != io.EOF {
				fmt.Fprintln(out, err)
			}
			break
		}

		if lineaddr, found := lines[offset]; found {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", lineaddr)
		} else {
			fmt.Fprint(out, "\033[1;30m~~~~~~~~\033[0m ")
		}

		fmt.Fprintln(out, strings.TrimRight(text, "\r\n"))

		offset += int64(len(text))

		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(out, err)
			}
			break
		}
	}
}

func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	out := dbg.output()

	for i := addr; i < addr+count && int(i) < machine.RAM_SIZE; i++ {
		if i == addr {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", i)
		} else if (i-addr)%4 == 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", i)
		}

		result := mc.RAM[i]

		if result == 0 {
			fmt.Fprintf(out, "\033[1;30m%#04x\033[0m ", result)
		} else {
			fmt.Fprintf(out, "%#04x ", result)
		}
	}

	fmt.Fprintln(out)
}

// PrintScreen renders screen memory as text. Each character covers a
// scale*2 by scale*4 block of pixels and is drawn when any pixel in it is
// set.
func (dbg *Debugger) PrintScreen(mc *machine.MachineState, scale int) {
	out := dbg.output()

	if scale < 1 {
		scale = 1
	}

	width, height := 2*scale, 4*scale

	var builder strings.Builder

	for row := 0; row < machine.SCREEN_HEIGHT; row += height {
		for col := 0; col < machine.SCREEN_WIDTH; col += width {
			if screenBlockSet(mc, row, col, width, height) {
				builder.WriteByte('#')
			} else {
				builder.WriteByte('.')
			}
		}

		builder.WriteByte('\n')
	}

	fmt.Fprint(out, builder.String())
}

func screenBlockSet(mc *machine.MachineState, row, col, width, height int) bool {
	for y := row; y < row+height && y < machine.SCREEN_HEIGHT; y++ {
		for x := col; x < col+width && x < machine.SCREEN_WIDTH; x++ {
			word := mc.RAM[int(machine.MEMSPACE_SCREEN)+y*32+x/16]

			if (word>>(x%16))&0x1 == 1 {
				return true
			}
		}
	}

	return false
}

func (dbg *Debugger) PrintLabels() {
	out := dbg.output()

	if dbg.DebugTable == nil {
		fmt.Fprintln(out, "No debug table loaded")
		return
	}

	names := make([]string, 0, len(dbg.DebugTable.Labels))
	for name := range dbg.DebugTable.Labels {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := dbg.DebugTable.Labels[names[i]], dbg.DebugTable.Labels[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		fmt.Fprintf(
			out, "\033[1m[%#04x]\033[0m %s\n", dbg.DebugTable.Labels[name], name,
		)
	}
}

func (dbg *Debugger) PrintVariables(mc *machine.MachineState) {
	out := dbg.output()

	if dbg.DebugTable == nil {
		fmt.Fprintln(out, "No debug table loaded")
		return
	}

	keys := make([]uint16, 0, len(dbg.DebugTable.Variables))
	for addr := range dbg.DebugTable.Variables {
		keys = append(keys, addr)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, addr := range keys {
		fmt.Fprintf(
			out,
			"\033[1m[%#04x]\033[0m %s = %#04x\n",
			addr,
			dbg.DebugTable.Variables[addr],
			mc.RAM[addr],
		)
	}
}
