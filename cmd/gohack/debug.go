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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/lassandro/gohack/pkg/debugger"
	"github.com/lassandro/gohack/pkg/encoding"
	"github.com/lassandro/gohack/pkg/machine"
)

var lastcmd []string

// parseAddr accepts a hex address or a name known to lookup
func parseAddr(arg string, lookup func(string) (uint16, bool)) (uint16, error) {
	if addr, err := encoding.DecodeHex(arg); err == nil {
		return addr, nil
	}

	if addr, ok := lookup(arg); ok {
		return addr, nil
	}

	return 0, fmt.Errorf("Unable to find '%s'", arg)
}

func debugBreak(dbg *debugger.Debugger, args []string) {
	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [0x####|label]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		addr, err := parseAddr(args[0], dbg.LookupLabel)

		if err != nil {
			log.Println(err)
			return
		}

		for _, breakpoint := range dbg.Breakpoints {
			if breakpoint.Addr == addr {
				return
			}
		}

		dbg.Breakpoints = append(
			dbg.Breakpoints,
			debugger.Breakpoint{Addr: addr},
		)

		fmt.Printf("Breakpoint added [%#04x]\n", addr)

	case "l", "ls", "list":
		const usage = "break list"

		if len(args) != 0 {
			log.Println(usage)
			return
		}

		var fmtstring string
		{
			digits := math.Floor(math.Log10(float64(len(dbg.Breakpoints) + 1)))
			fmtstring = fmt.Sprintf("#%%0%dd: %%#x\n", int64(digits)+1)
		}

		for i, breakpoint := range dbg.Breakpoints {
			fmt.Printf(fmtstring, i, breakpoint.Addr)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.ParseInt(args[0], 10, 64)

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(dbg.Breakpoints)) {
			log.Println("Invalid breakpoint number")
			return
		}

		dbg.Breakpoints[i] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
		dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]
		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		log.Printf("break: '%s' is not a valid command\n", cmd)
	}
}

func debugWatch(dbg *debugger.Debugger, args []string) {
	const usage = "watch [add|list|rm|clear]"

	if len(args) == 0 {
		log.Println(usage)
		return
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [0x####|variable] [read|write|readwrite]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		addr, err := parseAddr(args[0], dbg.LookupVariable)

		if err != nil {
			log.Println(err)
			return
		}

		var wtype debugger.WatchpointType
		var typename string

		switch args[1] {
		case "r", "read":
			wtype, typename = debugger.ReadWatch, "R"
		case "w", "write":
			wtype, typename = debugger.WriteWatch, "W"
		case "rw", "rwrite", "readwrite":
			wtype, typename = debugger.ReadWriteWatch, "RW"
		default:
			log.Println(usage)
			return
		}

		for _, watchpoint := range dbg.Watchpoints {
			if watchpoint.Addr == addr && watchpoint.Type == wtype {
				return
			}
		}

		dbg.Watchpoints = append(
			dbg.Watchpoints,
			debugger.Watchpoint{Addr: addr, Type: wtype},
		)

		fmt.Printf("Watchpoint added [%#04x] (%s)\n", addr, typename)

	case "l", "ls", "list":
		const usage = "watch list"

		if len(args) != 0 {
			log.Println(usage)
			return
		}

		var fmtstring string
		{
			digits := math.Floor(math.Log10(float64(len(dbg.Watchpoints) + 1)))
			fmtstring = fmt.Sprintf("#%%0%dd: %%#x %%s\n", int64(digits)+1)
		}

		for i, watchpoint := range dbg.Watchpoints {
			switch watchpoint.Type {
			case debugger.WriteWatch:
				fmt.Printf(fmtstring, i, watchpoint.Addr, "write")
			case debugger.ReadWatch:
				fmt.Printf(fmtstring, i, watchpoint.Addr, "read")
			case debugger.ReadWriteWatch:
				fmt.Printf(fmtstring, i, watchpoint.Addr, "readwrite")
			}
		}

	case "r", "rm", "remove":
		const usage = "watch rm [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.ParseInt(args[0], 10, 64)

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(dbg.Watchpoints)) {
			log.Println("Invalid watchpoint number")
			return
		}

		dbg.Watchpoints[i] = dbg.Watchpoints[len(dbg.Watchpoints)-1]
		dbg.Watchpoints = dbg.Watchpoints[:len(dbg.Watchpoints)-1]
		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = nil
		fmt.Println("Watchpoints reset")

	default:
		log.Printf("watch: '%s' is not a valid command\n", cmd)
	}
}

func debugReg(mc *machine.MachineState, args []string) {
	const usage = "register [A|D|PC] [0x####]"

	if len(args) > 0 {
		if len(args) != 2 {
			log.Println(usage)
			return
		}

		value, err := encoding.DecodeHex(args[1])

		if err != nil {
			log.Println(err)
			return
		}

		args[0] = strings.ToUpper(args[0])

		switch args[0] {
		case "A":
			mc.A = value
		case "D":
			mc.D = value
		case "PC":
			mc.Program = value
		default:
			log.Println("Invalid register")
			return
		}

		fmt.Printf("\033[1m%s:\033[0m %#04x\n", args[0], value)
	} else {
		fmt.Printf(
			"\033[1mA:\033[0m %#04x\t\033[1mD:\033[0m %#04x\t"+
				"\033[1mPC:\033[0m %#04x\n",
			mc.A,
			mc.D,
			mc.Program,
		)
	}
}

func debugSource(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "source [0x####|label] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	var addr uint16 = mc.Program
	var size uint16 = 3
	var err error

	if len(args) > 0 {
		if addr, err = parseAddr(args[0], dbg.LookupLabel); err != nil {
			var value int64
			value, err = strconv.ParseInt(args[0], 10, 16)

			if err != nil {
				log.Println(err)
				return
			}

			addr = mc.Program
			size = uint16(value)
		}
	}

	if len(args) > 1 {
		var value int64
		value, err = strconv.ParseInt(args[1], 10, 16)

		if err != nil {
			log.Println(err)
			return
		}

		size = uint16(value)
	}

	dbg.PrintSource(addr, size)
}

func debugJump(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "jump [0x####|label]"

	if len(args) != 1 {
		fmt.Println(usage)
		return
	}

	addr, err := parseAddr(args[0], dbg.LookupLabel)

	if err != nil {
		fmt.Println(err)
		return
	}

	mc.Program = addr
	mc.Halted = false

	fmt.Printf("\033[1mPC:\033[0m %#04x\n", addr)
}

func debugMemory(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "memory [0x####|variable|#] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	var size uint16 = 16
	var addr uint16 = machine.MEMSPACE_REGISTERS
	var err error

	if len(args) > 0 {
		if addr, err = parseAddr(args[0], dbg.LookupVariable); err != nil {
			var value int64
			value, err = strconv.ParseInt(args[0], 10, 16)

			if err != nil {
				log.Println(err)
				return
			}

			addr = mc.A
			size = uint16(value)
		} else {
			size = 1
		}
	}

	if len(args) > 1 {
		var value int64
		value, err = strconv.ParseInt(args[1], 10, 16)

		if err != nil {
			log.Println(err)
			return
		}

		size = uint16(value)
	}

	dbg.PrintMem(mc, addr, size)
}

func debugROM(mc *machine.MachineState, args []string) {
	const usage = "rom [0x####] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	var addr uint16 = mc.Program
	var size uint16 = 4
	var err error

	if len(args) > 0 {
		if addr, err = encoding.DecodeHex(args[0]); err != nil {
			log.Println(err)
			return
		}
	}

	if len(args) > 1 {
		var value int64
		if value, err = strconv.ParseInt(args[1], 10, 16); err != nil {
			log.Println(err)
			return
		}

		size = uint16(value)
	}

	for i := addr; i < addr+size && i < mc.Size; i++ {
		marker := " "
		if i == mc.Program {
			marker = ">"
		}

		fmt.Printf(
			"%s\033[1m[%#04x]\033[0m %s\n",
			marker,
			i,
			encoding.EncodeWord(mc.ROM[i]),
		)
	}
}

func debugSet(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "set [0x####|variable] [0x####]"

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := parseAddr(args[0], dbg.LookupVariable)

	if err != nil {
		log.Println(err)
		return
	}

	if int(addr) >= machine.RAM_SIZE {
		log.Println("Address outside of RAM")
		return
	}

	value, err := encoding.DecodeHex(args[1])

	if err != nil {
		log.Println(err)
		return
	}

	mc.RAM[addr] = value
	dbg.PrintMem(mc, addr, 1)
}

func debugScreen(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "screen [scale]"

	scale := 4

	if len(args) > 1 {
		log.Println(usage)
		return
	}

	if len(args) == 1 {
		value, err := strconv.Atoi(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		scale = value
	}

	dbg.PrintScreen(mc, scale)
}

func debugReset(dbg *debugger.Debugger, mc *machine.Machine) {
	if dbg.Binary == nil {
		fmt.Println("No binary loaded")
		return
	}

	if _, err := dbg.Binary.Seek(0, io.SeekStart); err != nil {
		log.Println(err)
		return
	}

	if err := mc.LoadHack(dbg.Binary); err != nil {
		log.Println(err)
		return
	}

	fmt.Println("Machine reset")
}

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	exitRawTerm()
	defer enterRawTerm()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			shouldexit = true
			return
		}

		args := strings.Fields(scanner.Text())

		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)

		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, args)

		case "r", "reg", "register", "registers":
			debugReg(&mc.State, args)

		case "s", "src", "source":
			debugSource(dbg, &mc.State, args)

		case "l", "label", "labels":
			dbg.PrintLabels()

		case "v", "var", "vars", "variables":
			dbg.PrintVariables(&mc.State)

		case "j", "jmp", "jump":
			debugJump(dbg, &mc.State, args)

		case "m", "mem", "memory":
			debugMemory(dbg, &mc.State, args)

		case "rom":
			debugROM(&mc.State, args)

		case "set":
			debugSet(dbg, &mc.State, args)

		case "screen":
			debugScreen(dbg, &mc.State, args)

		case "state":
			pp.Println(map[string]interface{}{
				"A":       mc.State.A,
				"D":       mc.State.D,
				"Program": mc.State.Program,
				"Size":    mc.State.Size,
				"Halted":  mc.State.Halted,
			})

		case "c", "continue":
			dbg.Break = false
			return

		case "n", "next":
			dbg.Break = true
			return

		case "q", "quit", "exit":
			shouldexit = true
			return

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "reset":
			debugReset(dbg, mc)

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if !dbg.Break {
		fmt.Println()
		fmt.Println("Program stopped")
		dbg.PrintSource(mc.State.Program, 8)
	}
	debugREPL(dbg, mc)
}

func handleRead(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}

func handleWrite(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}
