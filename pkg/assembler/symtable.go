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

package assembler

var predefinedSymbols = map[string]uint16{
	"R0":  0,
	"R1":  1,
	"R2":  2,
	"R3":  3,
	"R4":  4,
	"R5":  5,
	"R6":  6,
	"R7":  7,
	"R8":  8,
	"R9":  9,
	"R10": 10,
	"R11": 11,
	"R12": 12,
	"R13": 13,
	"R14": 14,
	"R15": 15,

	"SP":   SYMBOL_SP,
	"LCL":  SYMBOL_LCL,
	"ARG":  SYMBOL_ARG,
	"THIS": SYMBOL_THIS,
	"THAT": SYMBOL_THAT,

	"SCREEN": SYMBOL_SCREEN,
	"KBD":    SYMBOL_KBD,
}

// SymbolTable resolves label and variable names to addresses for a single
// assembly run. It is not safe for concurrent use.
type SymbolTable struct {
	symbols  map[string]uint16
	variable uint16
}

// NewSymbolTable returns a table seeded with the predefined symbols.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		symbols:  make(map[string]uint16, len(predefinedSymbols)),
		variable: VARIABLE_BASE,
	}

	for name, addr := range predefinedSymbols {
		st.symbols[name] = addr
	}

	return st
}

func IsPredefined(name string) bool {
	_, exists := predefinedSymbols[name]
	return exists
}

func (st *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, exists := st.symbols[name]
	return addr, exists
}

// Define binds name to addr, replacing any previous binding. It reports
// whether the name was already bound.
func (st *SymbolTable) Define(name string, addr uint16) bool {
	_, exists := st.symbols[name]
	st.symbols[name] = addr
	return exists
}

// Resolve returns the address bound to name, allocating the next free
// variable address when the name is unknown.
func (st *SymbolTable) Resolve(name string) (addr uint16, allocated bool) {
	if addr, exists := st.symbols[name]; exists {
		return addr, false
	}

	addr = st.variable
	st.symbols[name] = addr
	st.variable++

	return addr, true
}

func (st *SymbolTable) Len() int {
	return len(st.symbols)
}
