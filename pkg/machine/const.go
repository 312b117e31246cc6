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

const (
	ROM_SIZE = 1 << 15
	RAM_SIZE = int(MEMSPACE_KBD) + 1
)

const (
	MEMSPACE_REGISTERS uint16 = 0x0000
	MEMSPACE_STATIC           = 0x0010
	MEMSPACE_STACK            = 0x0100
	MEMSPACE_HEAP             = 0x0800
	MEMSPACE_SCREEN    uint16 = 0x4000
	MEMSPACE_KBD       uint16 = 0x6000
)

const (
	SCREEN_WIDTH  = 512
	SCREEN_HEIGHT = 256
	SCREEN_WORDS  = SCREEN_WIDTH * SCREEN_HEIGHT / 16
)

const (
	KEY_NONE      uint16 = 0
	KEY_NEWLINE   uint16 = 128
	KEY_BACKSPACE uint16 = 129
)

// C    |1 1 1|a|c1..c6     |d1..d3|j1..j3| Compute
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
const (
	BIT_COMPUTE uint16 = 1 << 15

	BIT_A  uint16 = 1 << 12
	BIT_ZX uint16 = 1 << 11
	BIT_NX uint16 = 1 << 10
	BIT_ZY uint16 = 1 << 9
	BIT_NY uint16 = 1 << 8
	BIT_F  uint16 = 1 << 7
	BIT_NO uint16 = 1 << 6

	BIT_DEST_A uint16 = 1 << 5
	BIT_DEST_D uint16 = 1 << 4
	BIT_DEST_M uint16 = 1 << 3

	BIT_JLT uint16 = 1 << 2
	BIT_JEQ uint16 = 1 << 1
	BIT_JGT uint16 = 1 << 0
)
