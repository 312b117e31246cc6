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
	"bufio"
	"io"
	"strings"

	"github.com/lassandro/gohack/pkg/encoding"
)

var whitespace = strings.NewReplacer(" ", "", "\t", "")

// Preprocess strips spaces and the trailing comment from a raw source line
// and classifies what is left.
func Preprocess(raw string, cursor Cursor) Line {
	var line Line

	line.Position = cursor
	line.Position.Size = int64(len(raw))

	if column := strings.IndexFunc(raw, func(char rune) bool {
		return char != ' ' && char != '\t'
	}); column != -1 {
		line.Position.Column = column + 1
		line.Position.Byte = cursor.LineByte + int64(column)
	}

	value := whitespace.Replace(raw)

	if i := strings.Index(value, "//"); i != -1 {
		value = value[:i]
	}

	line.Value = value

	switch {
	case strings.HasPrefix(value, "("):
		line.Type = LINE_LABEL
	case len(value) > 0 && !strings.HasPrefix(value, "//"):
		line.Type = LINE_INSTRUCTION
	default:
		line.Type = LINE_BLANK
	}

	return line
}

func parseLabel(line *Line) (string, bool) {
	name := strings.Trim(strings.Trim(line.Value, "("), ")")
	valid := strings.HasSuffix(line.Value, ")") && len(name) > 0 &&
		!strings.ContainsAny(name, "()")

	return name, valid
}

func parseInstruction(line *Line) InstructionType {
	if line.Type != LINE_INSTRUCTION {
		return INSTRUCTION_INVALID
	}

	if strings.HasPrefix(line.Value, "@") {
		return INSTRUCTION_ADDRESS
	}

	return INSTRUCTION_COMPUTE
}

// ResolveLabels binds every label to the address of the instruction that
// follows it. This is the first pass and must complete before
// EncodeInstructions runs.
func ResolveLabels(lines []Line, symbols *SymbolTable, debug *DebugTable) (errs []error) {
	var program uint16 = 0

	for i := range lines {
		line := &lines[i]

		switch line.Type {
		case LINE_LABEL:
			name, valid := parseLabel(line)

			if !valid {
				errs = append(errs, &InvalidLabelError{line.Position, line.Value})
			}

			if IsPredefined(name) {
				errs = append(
					errs, &RedeclaredLabelError{line.Position, name, true},
				)
			} else if _, exists := symbols.Lookup(name); exists {
				errs = append(
					errs, &RedeclaredLabelError{line.Position, name, false},
				)
			}

			symbols.Define(name, program)

			if debug != nil {
				debug.Labels[name] = program
			}

		case LINE_INSTRUCTION:
			program++
		}
	}

	return
}

// EncodeInstructions is the second pass. It writes one word per instruction
// line to out, allocating variables in symbols as they are first used.
//
// Unknown mnemonics and oversized literals are reported but still encoded:
// an unknown mnemonic contributes no bits and an oversized literal keeps its
// full width, so the affected line is not 16 characters long.
func EncodeInstructions(lines []Line, symbols *SymbolTable, out *strings.Builder, debug *DebugTable) (errs []error) {
	var program uint16 = 0

	for i := range lines {
		line := &lines[i]

		switch parseInstruction(line) {
		// A    |0|value                          | Load address
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_ADDRESS:
			operand := strings.TrimPrefix(line.Value, "@")

			value, err := encoding.DecodeInt(operand)

			if err != nil {
				var allocated bool
				value, allocated = symbols.Resolve(operand)

				if allocated && debug != nil {
					debug.Variables[value] = operand
				}
			} else if value >= 1<<15 {
				errs = append(
					errs,
					&OversizedLiteralError{line.Position, 1<<15 - 1, value},
				)
			}

			out.WriteString(encoding.EncodeAddress(value))

		// C    |1 1 1|a|c1..c6     |d1..d3|j1..j3| Compute
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_COMPUTE:
			destText, compJump, found := strings.Cut(line.Value, "=")

			if !found {
				destText, compJump = "", line.Value
			}

			compText, jumpText, _ := strings.Cut(compJump, ";")

			comp := ParseComp(compText)
			dest := ParseDest(destText)
			jump := ParseJump(jumpText)

			if dest == DEST_INVALID {
				errs = append(
					errs,
					&UnknownMnemonicError{line.Position, MNEMONIC_DEST, destText},
				)
			}

			if comp == COMP_INVALID {
				errs = append(
					errs,
					&UnknownMnemonicError{line.Position, MNEMONIC_COMP, compText},
				)
			}

			if jump == JUMP_INVALID {
				errs = append(
					errs,
					&UnknownMnemonicError{line.Position, MNEMONIC_JUMP, jumpText},
				)
			}

			out.WriteString("111")
			out.WriteString(comp.Bits())
			out.WriteString(dest.Bits())
			out.WriteString(jump.Bits())

		default:
			continue
		}

		out.WriteByte('\n')

		if debug != nil {
			debug.Lines[program] = line.Position.LineByte
		}

		program++
	}

	return
}

// AssembleHackSource reads Hack assembly from input and returns the program
// as .hack text, one word per line. The returned errors describe problems
// that were encoded anyway; only a read failure leaves result empty.
func AssembleHackSource(input io.Reader, debug *DebugTable) (result string, errs []error) {
	var lines []Line
	var reader = bufio.NewReader(input)
	var cursor = Cursor{Line: 1}

	for {
		text, err := reader.ReadString('\n')

		if len(text) > 0 {
			raw := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")

			lines = append(lines, Preprocess(raw, cursor))

			// Offsets count the line terminator as it appears in the source
			cursor.Line++
			cursor.Byte += int64(len(text))
			cursor.LineByte += int64(len(text))
		}

		if err == io.EOF {
			break
		} else if err != nil {
			return "", []error{err}
		}
	}

	symbols := NewSymbolTable()

	errs = append(errs, ResolveLabels(lines, symbols, debug)...)

	var builder strings.Builder
	builder.Grow(len(lines) * (encoding.WordSize + 1))

	errs = append(errs, EncodeInstructions(lines, symbols, &builder, debug)...)

	return builder.String(), errs
}
