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

import (
	"fmt"
)

type LineType uint
type InstructionType uint
type MnemonicType uint
type CompType uint
type DestType uint
type JumpType uint

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

// Line is a source line with spaces and comments stripped
type Line struct {
	Type     LineType
	Value    string
	Position Cursor
}

// DebugTable maps the assembled program back onto its source. It is filled
// in by AssembleHackSource when one is supplied.
type DebugTable struct {
	Source    string
	Lines     map[uint16]int64
	Labels    map[string]uint16
	Variables map[uint16]string
}

func NewDebugTable(source string) *DebugTable {
	return &DebugTable{
		Source:    source,
		Lines:     make(map[uint16]int64),
		Labels:    make(map[string]uint16),
		Variables: make(map[uint16]string),
	}
}

type TokenError interface {
	GetPosition() Cursor
}

type UnknownMnemonicError struct {
	Position Cursor
	Type     MnemonicType
	Received string
}

func (err *UnknownMnemonicError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownMnemonicError) Error() string {
	var field string

	switch err.Type {
	case MNEMONIC_DEST:
		field = "destination"
	case MNEMONIC_COMP:
		field = "computation"
	case MNEMONIC_JUMP:
		field = "jump"
	default:
		field = "<invalid>"
	}

	return fmt.Sprintf(
		"%02d:%02d: Unknown %s mnemonic '%s'",
		err.Position.Line,
		err.Position.Column,
		field,
		err.Received,
	)
}

type OversizedLiteralError struct {
	Position Cursor
	Required uint16
	Received uint16
}

func (err *OversizedLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Literal exceeds allowed size\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type RedeclaredLabelError struct {
	Position   Cursor
	Received   string
	Predefined bool
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	if err.Predefined {
		return fmt.Sprintf(
			"%02d:%02d: Label '%s' overrides a predefined symbol",
			err.Position.Line,
			err.Position.Column,
			err.Received,
		)
	}

	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidLabelError struct {
	Position Cursor
	Received string
}

func (err *InvalidLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid label declaration '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}
