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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const WordSize = 16

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes an unsigned base-10 string that fits in a machine word. A single
// leading '+' is accepted, '-' is not.
func DecodeInt(s string) (uint16, error) {
	result, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a line of a .hack file: exactly 16 characters of '0' or '1'
func DecodeWord(s string) (uint16, error) {
	if len(s) != WordSize {
		return 0, fmt.Errorf(
			"Invalid word length\n\twant:%d\n\thave:%d", WordSize, len(s),
		)
	}

	var result uint16

	for _, char := range s {
		result <<= 1

		switch char {
		case '0':
		case '1':
			result |= 0x1
		default:
			return 0, fmt.Errorf("Invalid binary digit %q", char)
		}
	}

	return result, nil
}

// Encodes an address instruction. Values at or above 1<<15 are not masked
// and keep their full width.
func EncodeAddress(value uint16) string {
	return fmt.Sprintf("0%015b", value)
}

// Encodes a machine word as its 16-character binary text form
func EncodeWord(value uint16) string {
	return fmt.Sprintf("%016b", value)
}
