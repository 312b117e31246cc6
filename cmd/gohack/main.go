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
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/debugger"
	"github.com/lassandro/gohack/pkg/machine"
)

var debugvar bool
var cyclesvar uint64
var shouldexit bool

var rootCmd = &cobra.Command{
	Use:   "gohack [--debug] [--cycles n] filename",
	Short: "Runs a .hack program on an emulated Hack computer",
	Long: `gohack loads a .hack binary text file into ROM and executes it until
the program halts. A program halts when it runs past its last instruction
or enters the "(END) @END 0;JMP" loop.

Keystrokes on the terminal are delivered through the KBD register.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gohack(args[0])
	},
}

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().BoolVar(
		&debugvar, "debug", false, "Runs the machine in a debug CLI",
	)
	rootCmd.Flags().Uint64Var(
		&cyclesvar, "cycles", 0,
		"Stops the machine after this many instructions (0 runs until halt)",
	)
}

func loadDebugTable(dbg *debugger.Debugger, binary string) {
	filename := filepath.Join(
		filepath.Dir(binary),
		strings.TrimSuffix(filepath.Base(binary), filepath.Ext(binary))+".hackdb",
	)

	file, err := os.Open(filename)

	if err != nil {
		log.Println("Error loading symbol file")
		log.Println(err)
		return
	}

	defer file.Close()

	var table assembler.DebugTable

	if err := gob.NewDecoder(file).Decode(&table); err != nil {
		log.Println("Error loading symbol file")
		log.Println(err)
		return
	}

	dbg.DebugTable = &table
}

func gohack(infile string) error {
	file, err := os.Open(infile)

	if err != nil {
		return err
	}

	defer file.Close()

	var mc machine.Machine
	var dh machine.DeviceHandler
	dh.Keyboard = bufio.NewReader(os.Stdin)
	mc.Devices = &dh

	var dbg *debugger.Debugger

	if debugvar {
		dbg = &debugger.Debugger{
			HandleBreak: handleBreak,
			HandleRead:  handleRead,
			HandleWrite: handleWrite,
			Binary:      file,
		}
		mc.Debugger = dbg

		loadDebugTable(dbg, infile)

		if dbg.DebugTable != nil && dbg.DebugTable.Source != "" {
			if source, err := os.Open(dbg.DebugTable.Source); err == nil {
				dbg.Source = source
				defer source.Close()
			} else {
				log.Println("Error loading source file")
				log.Println(err)
			}
		}
	}

	var interrupted atomic.Bool

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer signal.Stop(c)

	go func() {
		for range c {
			interrupted.Store(true)
		}
	}()

	if err := mc.LoadHack(file); err != nil {
		return err
	}

	if err := enterRawTerm(); err == nil {
		defer exitRawTerm()
	}

	if dbg != nil {
		debugREPL(dbg, &mc)
	}

	var cycles uint64

	for !shouldexit && !mc.State.Halted {
		if cyclesvar != 0 && cycles >= cyclesvar {
			break
		}

		if interrupted.Swap(false) {
			if dbg == nil {
				break
			}

			fmt.Println()
			dbg.Break = true
		}

		mc.Step()
		cycles++
	}

	if dbg != nil && mc.State.Halted {
		fmt.Printf("\r\nProgram halted after %d cycles\r\n", cycles)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
