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

var compBits = [...]string{
	COMP_INVALID: "",

	// a  c1 c2 c3 c4 c5 c6
	COMP_ZERO:        "0101010",
	COMP_ONE:         "0111111",
	COMP_NEG_ONE:     "0111010",
	COMP_D:           "0001100",
	COMP_A:           "0110000",
	COMP_NOT_D:       "0001101",
	COMP_NOT_A:       "0110001",
	COMP_NEG_D:       "0001111",
	COMP_NEG_A:       "0110011",
	COMP_D_PLUS_ONE:  "0011111",
	COMP_A_PLUS_ONE:  "0110111",
	COMP_D_MINUS_ONE: "0001110",
	COMP_A_MINUS_ONE: "0110010",
	COMP_D_PLUS_A:    "0000010",
	COMP_D_MINUS_A:   "0010011",
	COMP_A_MINUS_D:   "0000111",
	COMP_D_AND_A:     "0000000",
	COMP_D_OR_A:      "0010101",

	COMP_M:           "1110000",
	COMP_NOT_M:       "1110001",
	COMP_NEG_M:       "1110011",
	COMP_M_PLUS_ONE:  "1110111",
	COMP_M_MINUS_ONE: "1110010",
	COMP_D_PLUS_M:    "1000010",
	COMP_D_MINUS_M:   "1010011",
	COMP_M_MINUS_D:   "1000111",
	COMP_D_AND_M:     "1000000",
	COMP_D_OR_M:      "1010101",
}

var destBits = [...]string{
	DEST_INVALID: "",
	DEST_NULL:    "000",
	DEST_M:       "001",
	DEST_D:       "010",
	DEST_MD:      "011",
	DEST_A:       "100",
	DEST_AM:      "101",
	DEST_AD:      "110",
	DEST_ADM:     "111",
}

var jumpBits = [...]string{
	JUMP_INVALID: "",
	JUMP_NULL:    "000",
	JUMP_JGT:     "001",
	JUMP_JEQ:     "010",
	JUMP_JGE:     "011",
	JUMP_JLT:     "100",
	JUMP_JNE:     "101",
	JUMP_JLE:     "110",
	JUMP_JMP:     "111",
}

// ParseComp returns COMP_INVALID for anything outside the comp table.
func ParseComp(ident string) CompType {
	switch ident {
	case "0":
		return COMP_ZERO
	case "1":
		return COMP_ONE
	case "-1":
		return COMP_NEG_ONE
	case "D":
		return COMP_D
	case "A":
		return COMP_A
	case "!D":
		return COMP_NOT_D
	case "!A":
		return COMP_NOT_A
	case "-D":
		return COMP_NEG_D
	case "-A":
		return COMP_NEG_A
	case "D+1":
		return COMP_D_PLUS_ONE
	case "A+1":
		return COMP_A_PLUS_ONE
	case "D-1":
		return COMP_D_MINUS_ONE
	case "A-1":
		return COMP_A_MINUS_ONE
	case "D+A":
		return COMP_D_PLUS_A
	case "D-A":
		return COMP_D_MINUS_A
	case "A-D":
		return COMP_A_MINUS_D
	case "D&A":
		return COMP_D_AND_A
	case "D|A":
		return COMP_D_OR_A
	case "M":
		return COMP_M
	case "!M":
		return COMP_NOT_M
	case "-M":
		return COMP_NEG_M
	case "M+1":
		return COMP_M_PLUS_ONE
	case "M-1":
		return COMP_M_MINUS_ONE
	case "D+M":
		return COMP_D_PLUS_M
	case "D-M":
		return COMP_D_MINUS_M
	case "M-D":
		return COMP_M_MINUS_D
	case "D&M":
		return COMP_D_AND_M
	case "D|M":
		return COMP_D_OR_M
	}

	return COMP_INVALID
}

func ParseDest(ident string) DestType {
	switch ident {
	case "":
		return DEST_NULL
	case "M":
		return DEST_M
	case "D":
		return DEST_D
	case "MD":
		return DEST_MD
	case "A":
		return DEST_A
	case "AM":
		return DEST_AM
	case "AD":
		return DEST_AD
	case "ADM":
		return DEST_ADM
	}

	return DEST_INVALID
}

func ParseJump(ident string) JumpType {
	switch ident {
	case "":
		return JUMP_NULL
	case "JGT":
		return JUMP_JGT
	case "JEQ":
		return JUMP_JEQ
	case "JGE":
		return JUMP_JGE
	case "JLT":
		return JUMP_JLT
	case "JNE":
		return JUMP_JNE
	case "JLE":
		return JUMP_JLE
	case "JMP":
		return JUMP_JMP
	}

	return JUMP_INVALID
}

// Bits returns the 7-bit a+c field, or "" for COMP_INVALID.
func (comp CompType) Bits() string {
	if int(comp) >= len(compBits) {
		return ""
	}

	return compBits[comp]
}

// Bits returns the 3-bit d field, or "" for DEST_INVALID.
func (dest DestType) Bits() string {
	if int(dest) >= len(destBits) {
		return ""
	}

	return destBits[dest]
}

// Bits returns the 3-bit j field, or "" for JUMP_INVALID.
func (jump JumpType) Bits() string {
	if int(jump) >= len(jumpBits) {
		return ""
	}

	return jumpBits[jump]
}
