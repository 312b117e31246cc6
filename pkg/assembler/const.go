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

const (
	LINE_BLANK LineType = iota
	LINE_LABEL
	LINE_INSTRUCTION
)

const (
	INSTRUCTION_INVALID InstructionType = iota
	INSTRUCTION_ADDRESS
	INSTRUCTION_COMPUTE
)

const (
	MNEMONIC_DEST MnemonicType = iota
	MNEMONIC_COMP
	MNEMONIC_JUMP
)

const (
	COMP_INVALID CompType = iota

	// a=0
	COMP_ZERO
	COMP_ONE
	COMP_NEG_ONE
	COMP_D
	COMP_A
	COMP_NOT_D
	COMP_NOT_A
	COMP_NEG_D
	COMP_NEG_A
	COMP_D_PLUS_ONE
	COMP_A_PLUS_ONE
	COMP_D_MINUS_ONE
	COMP_A_MINUS_ONE
	COMP_D_PLUS_A
	COMP_D_MINUS_A
	COMP_A_MINUS_D
	COMP_D_AND_A
	COMP_D_OR_A

	// a=1
	COMP_M
	COMP_NOT_M
	COMP_NEG_M
	COMP_M_PLUS_ONE
	COMP_M_MINUS_ONE
	COMP_D_PLUS_M
	COMP_D_MINUS_M
	COMP_M_MINUS_D
	COMP_D_AND_M
	COMP_D_OR_M
)

const (
	DEST_INVALID DestType = iota
	DEST_NULL
	DEST_M
	DEST_D
	DEST_MD
	DEST_A
	DEST_AM
	DEST_AD
	DEST_ADM
)

const (
	JUMP_INVALID JumpType = iota
	JUMP_NULL
	JUMP_JGT
	JUMP_JEQ
	JUMP_JGE
	JUMP_JLT
	JUMP_JNE
	JUMP_JLE
	JUMP_JMP
)

// Predefined symbol addresses
const (
	SYMBOL_SP     uint16 = 0
	SYMBOL_LCL    uint16 = 1
	SYMBOL_ARG    uint16 = 2
	SYMBOL_THIS   uint16 = 3
	SYMBOL_THAT   uint16 = 4
	SYMBOL_SCREEN uint16 = 0x4000
	SYMBOL_KBD    uint16 = 0x6000
)

const (
	REGISTER_COUNT = 16

	// First RAM address handed out to variables
	VARIABLE_BASE uint16 = 16
)
