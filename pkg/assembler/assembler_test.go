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

package assembler_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
)

type testCase struct {
	Name   string
	Input  string
	Output []string
	Debug  *assembler.DebugTable
}

type failCase struct {
	Name   string
	Input  string
	Output []string
	Error  error
}

func joinWords(words []string) string {
	if len(words) == 0 {
		return ""
	}

	return strings.Join(words, "\n") + "\n"
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	var debug *assembler.DebugTable

	if test.Debug != nil {
		debug = assembler.NewDebugTable("")
	}

	result, errs := assembler.AssembleHackSource(
		strings.NewReader(test.Input), debug,
	)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if want := joinWords(test.Output); result != want {
		t.Fatalf(
			"Instruction encoding mismatch\nwant:\n%s\nhave:\n%s",
			want,
			result,
		)
	}

	if test.Debug == nil {
		return
	}

	if !reflect.DeepEqual(debug.Lines, test.Debug.Lines) {
		t.Fatalf(
			"Debug table line mismatch\nwant:%v\nhave:%v",
			test.Debug.Lines,
			debug.Lines,
		)
	}

	if !reflect.DeepEqual(debug.Labels, test.Debug.Labels) {
		t.Fatalf(
			"Debug table label mismatch\nwant:%v\nhave:%v",
			test.Debug.Labels,
			debug.Labels,
		)
	}

	if !reflect.DeepEqual(debug.Variables, test.Debug.Variables) {
		t.Fatalf(
			"Debug table variable mismatch\nwant:%v\nhave:%v",
			test.Debug.Variables,
			debug.Variables,
		)
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	result, errs := assembler.AssembleHackSource(
		strings.NewReader(test.Input), nil,
	)

	if test.Error == nil {
		panic("Fail case missing error value")
	}

	if len(errs) == 0 {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if len(errs) > 1 {
		errTypes := make([]reflect.Type, 0, len(errs))
		for _, err := range errs {
			errTypes = append(errTypes, reflect.TypeOf(err))
		}

		t.Fatalf(
			"%s produced multiple errors:\n\twant:%T (test.Error)\n\thave:%v",
			t.Name(),
			test.Error,
			errTypes,
		)
	}

	if reflect.TypeOf(errs[0]) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T",
			t.Name(),
			test.Error,
			errs[0],
		)
	}

	if _, ok := errs[0].(assembler.TokenError); !ok {
		t.Fatalf("%s produced an error without a position", t.Name())
	}

	// Diagnostics never change what gets encoded
	if want := joinWords(test.Output); result != want {
		t.Fatalf(
			"Instruction encoding mismatch\nwant:\n%s\nhave:\n%s",
			want,
			result,
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerFail(t, &test)
			})
		}
	})
}

// A    |0|value                          | Load address
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestAddress(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Literal",
			Input:  `@2`,
			Output: []string{"0000000000000010"},
		},
		{
			Name:   "Zero",
			Input:  `@0`,
			Output: []string{"0000000000000000"},
		},
		{
			Name:   "Max Literal",
			Input:  `@32767`,
			Output: []string{"0111111111111111"},
		},
		{
			Name: "Plus Sign",
			Input: `
			@+5
			@-5
			`,
			Output: []string{
				"0000000000000101",
				"0000000000010000", // -5 = 16
			},
		},
		{
			Name: "Variables",
			Input: `
			@x
			@y
			@x
			`,
			Output: []string{
				"0000000000010000", // x = 16
				"0000000000010001", // y = 17
				"0000000000010000", // x = 16
			},
		},
		{
			Name: "Variables After Labels",
			Input: `
			@i
			(LOOP)
			@LOOP
			@j
			`,
			Output: []string{
				"0000000000010000", // i = 16
				"0000000000000001", // LOOP
				"0000000000010001", // j = 17
			},
		},
		{
			Name: "Case Sensitive",
			Input: `
			@sp
			@SP
			`,
			Output: []string{
				"0000000000010000",
				"0000000000000000",
			},
		},
	})

	testFail(t, []failCase{
		{
			Name:   "Oversized Literal",
			Input:  `@40000`,
			Output: []string{"01001110001000000"},
			Error:  &assembler.OversizedLiteralError{},
		},
	})
}

func TestPredefined(t *testing.T) {
	predefined := map[string]uint16{
		"R0": 0, "R1": 1, "R2": 2, "R3": 3,
		"R4": 4, "R5": 5, "R6": 6, "R7": 7,
		"R8": 8, "R9": 9, "R10": 10, "R11": 11,
		"R12": 12, "R13": 13, "R14": 14, "R15": 15,
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		"SCREEN": 16384, "KBD": 24576,
	}

	tests := make([]testCase, 0, len(predefined))

	for name, addr := range predefined {
		tests = append(tests, testCase{
			Name:   name,
			Input:  "@" + name,
			Output: []string{"0" + strings.Repeat("0", 15-len(binary(addr))) + binary(addr)},
		})
	}

	testSuccess(t, tests)
}

func binary(value uint16) string {
	if value == 0 {
		return "0"
	}

	var digits []byte
	for ; value > 0; value >>= 1 {
		digits = append([]byte{'0' + byte(value&0x1)}, digits...)
	}

	return string(digits)
}

// C    |1 1 1|a|c1..c6     |d1..d3|j1..j3| Compute
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestCompute(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Increment D",
			Input:  `D=D+1`,
			Output: []string{"1110011111010000"},
		},
		{
			Name:   "Unconditional Jump",
			Input:  `0;JMP`,
			Output: []string{"1110101010000111"},
		},
		{
			Name:   "Memory Increment",
			Input:  `M=M+1`,
			Output: []string{"1111110111001000"},
		},
		{
			Name:   "Memory Decrement To AM",
			Input:  `AM=M-1`,
			Output: []string{"1111110010101000"},
		},
		{
			Name:   "Conditional Jump",
			Input:  `D;JGT`,
			Output: []string{"1110001100000001"},
		},
		{
			Name:   "Dest Comp Jump",
			Input:  `ADM=D|M;JNE`,
			Output: []string{"1111010101111101"},
		},
	})

	testFail(t, []failCase{
		{
			Name:   "Unknown Comp",
			Input:  `D=X`,
			Output: []string{"111010000"},
			Error:  &assembler.UnknownMnemonicError{},
		},
		{
			Name:   "Unknown Dest",
			Input:  `DM=1`,
			Output: []string{"1110111111000"},
			Error:  &assembler.UnknownMnemonicError{},
		},
		{
			Name:   "Unknown Jump",
			Input:  `0;JUMP`,
			Output: []string{"1110101010000"},
			Error:  &assembler.UnknownMnemonicError{},
		},
		{
			Name:   "Lowercase Mnemonic",
			Input:  `0;jmp`,
			Output: []string{"1110101010000"},
			Error:  &assembler.UnknownMnemonicError{},
		},
	})
}

func TestMnemonicTables(t *testing.T) {
	comp := map[string]string{
		"0": "0101010", "1": "0111111", "-1": "0111010",
		"D": "0001100", "A": "0110000", "!D": "0001101",
		"!A": "0110001", "-D": "0001111", "-A": "0110011",
		"D+1": "0011111", "A+1": "0110111", "D-1": "0001110",
		"A-1": "0110010", "D+A": "0000010", "D-A": "0010011",
		"A-D": "0000111", "D&A": "0000000", "D|A": "0010101",
		"M": "1110000", "!M": "1110001", "-M": "1110011",
		"M+1": "1110111", "M-1": "1110010", "D+M": "1000010",
		"D-M": "1010011", "M-D": "1000111", "D&M": "1000000",
		"D|M": "1010101",
	}

	dest := map[string]string{
		"M": "001", "D": "010", "MD": "011", "A": "100",
		"AM": "101", "AD": "110", "ADM": "111",
	}

	jump := map[string]string{
		"JGT": "001", "JEQ": "010", "JGE": "011", "JLT": "100",
		"JNE": "101", "JLE": "110", "JMP": "111",
	}

	var tests []testCase

	for mnemonic, bits := range comp {
		tests = append(tests, testCase{
			Name:   "Comp " + mnemonic,
			Input:  mnemonic,
			Output: []string{"111" + bits + "000000"},
		})
	}

	for mnemonic, bits := range dest {
		tests = append(tests, testCase{
			Name:   "Dest " + mnemonic,
			Input:  mnemonic + "=0",
			Output: []string{"1110101010" + bits + "000"},
		})
	}

	for mnemonic, bits := range jump {
		tests = append(tests, testCase{
			Name:   "Jump " + mnemonic,
			Input:  "0;" + mnemonic,
			Output: []string{"1110101010000" + bits},
		})
	}

	testSuccess(t, tests)

	if len(comp) != 28 {
		t.Fatalf("Invalid comp table size\nwant:28\nhave:%d", len(comp))
	}

	for mnemonic, want := range comp {
		if have := assembler.ParseComp(mnemonic).Bits(); have != want {
			t.Fatalf(
				"Comp bits mismatch\nwant:%s (%s)\nhave:%s",
				want,
				mnemonic,
				have,
			)
		}
	}

	if bits := assembler.ParseComp("X").Bits(); bits != "" {
		t.Fatalf("Unknown comp produced bits\nwant:\"\"\nhave:%q", bits)
	}

	if bits := assembler.ParseDest("X").Bits(); bits != "" {
		t.Fatalf("Unknown dest produced bits\nwant:\"\"\nhave:%q", bits)
	}

	if bits := assembler.ParseJump("X").Bits(); bits != "" {
		t.Fatalf("Unknown jump produced bits\nwant:\"\"\nhave:%q", bits)
	}
}

func TestComment(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Comment",
			Input:  `// Lorem Ipsum`,
			Output: nil,
		},
		{
			Name: "Multiple Comments",
			Input: `
			// Lorem Ipsum
			// Lorem Ipsum // Lorem Ipsum

			`,
			Output: nil,
		},
		{
			Name: "Inline Comments",
			Input: `
			// Lorem Ipsum
			@2 // Lorem Ipsum
			D=D+1// Lorem Ipsum
			// 0;JMP
			`,
			Output: []string{
				"0000000000000010",
				"1110011111010000",
			},
		},
		{
			Name:   "Embedded Whitespace",
			Input:  "  D = D + 1 ;  JGT   // Lorem Ipsum",
			Output: []string{"1110011111010001"},
		},
		{
			Name:   "Carriage Returns",
			Input:  "@2\r\n0;JMP\r\n",
			Output: []string{"0000000000000010", "1110101010000111"},
		},
		{
			Name:   "Long Comment Line",
			Input:  "@2\n// " + strings.Repeat("x", 70000) + "\n0;JMP\n",
			Output: []string{"0000000000000010", "1110101010000111"},
		},
	})
}

func TestLabel(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Backwards Label",
			Input: `
			@1
			(LOOP)
				D=D-1
				@LOOP
				D;JGT
			`,
			Output: []string{
				"0000000000000001",
				"1110001110010000",
				"0000000000000001", // LOOP
				"1110001100000001",
			},
		},
		{
			Name: "Forwards Label",
			Input: `
				@END
				0;JMP
			(END)
				@END
				0;JMP
			`,
			Output: []string{
				"0000000000000010", // END
				"1110101010000111",
				"0000000000000010", // END
				"1110101010000111",
			},
		},
		{
			Name: "Label Before Any Instruction",
			Input: `
			// Lorem Ipsum
			(START)

			@START
			`,
			Output: []string{"0000000000000000"},
		},
		{
			Name: "Consecutive Labels",
			Input: `
			@0
			(A1)
			(A2)
			@A2
			@A1
			`,
			Output: []string{
				"0000000000000000",
				"0000000000000001",
				"0000000000000001",
			},
		},
	})

	testFail(t, []failCase{
		{
			Name: "Predefined Label",
			Input: `
			@0
			(SP)
			@SP
			`,
			Output: []string{
				"0000000000000000",
				"0000000000000001",
			},
			Error: &assembler.RedeclaredLabelError{},
		},
		{
			Name: "Redeclared Label",
			Input: `
			(L)
			@L
			(L)
			@L
			`,
			Output: []string{
				"0000000000000001",
				"0000000000000001",
			},
			Error: &assembler.RedeclaredLabelError{},
		},
		{
			Name: "Unterminated Label",
			Input: `
			(LOOP
			@LOOP
			`,
			Output: []string{"0000000000000000"},
			Error:  &assembler.InvalidLabelError{},
		},
	})
}

func TestIdempotent(t *testing.T) {
	const input = `
	@i
	M=1
	@sum
	M=0
	(LOOP)
		@i
		D=M
		@100
		D=D-A
		@END
		D;JGT
		@i
		D=M
		@sum
		M=D+M
		@i
		M=M+1
		@LOOP
		0;JMP
	(END)
		@END
		0;JMP
	`

	first, errs := assembler.AssembleHackSource(strings.NewReader(input), nil)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	second, errs := assembler.AssembleHackSource(strings.NewReader(input), nil)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if first != second {
		t.Fatalf("Output mismatch\nwant:\n%s\nhave:\n%s", first, second)
	}

	if count := strings.Count(first, "\n"); count != 20 {
		t.Fatalf("Instruction count mismatch\nwant:20\nhave:%d", count)
	}
}

func TestDebugTable(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Debug Table",
			/*
				+  3	@i
				+  4	M=1
				+  7	(LOOP)
				+  6	@LOOP
				+  6	0;JMP
			*/
			Input: ("@i\n" +
				"M=1\n" +
				"(LOOP)\n" +
				"@LOOP\n" +
				"0;JMP"),
			Output: []string{
				"0000000000010000",
				"1110111111001000",
				"0000000000000010",
				"1110101010000111",
			},
			Debug: &assembler.DebugTable{
				Lines: map[uint16]int64{
					0: 0,
					1: 3,
					2: 14,
					3: 20,
				},
				Labels: map[string]uint16{
					"LOOP": 2,
				},
				Variables: map[uint16]string{
					16: "i",
				},
			},
		},
		{
			Name: "Carriage Returns",
			/*
				+  6	// c
				+  4	@2
				+  5	D=A
			*/
			Input: "// c\r\n@2\r\nD=A\r\n",
			Output: []string{
				"0000000000000010",
				"1110110000010000",
			},
			Debug: &assembler.DebugTable{
				Lines: map[uint16]int64{
					0: 6,
					1: 10,
				},
				Labels:    map[string]uint16{},
				Variables: map[uint16]string{},
			},
		},
		{
			Name: "Shared Label Address",
			Input: ("@0\n" +
				"(FIRST)\n" +
				"(SECOND)\n" +
				"@SECOND\n"),
			Output: []string{
				"0000000000000000",
				"0000000000000001",
			},
			Debug: &assembler.DebugTable{
				Lines: map[uint16]int64{
					0: 0,
					1: 20,
				},
				Labels: map[string]uint16{
					"FIRST":  1,
					"SECOND": 1,
				},
				Variables: map[uint16]string{},
			},
		},
	})
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		Raw   string
		Type  assembler.LineType
		Value string
	}{
		{"", assembler.LINE_BLANK, ""},
		{"   ", assembler.LINE_BLANK, ""},
		{"// comment", assembler.LINE_BLANK, ""},
		{"\t(LOOP) // comment", assembler.LINE_LABEL, "(LOOP)"},
		{"  @ R0", assembler.LINE_INSTRUCTION, "@R0"},
		{"D = M ; JEQ", assembler.LINE_INSTRUCTION, "D=M;JEQ"},
		{"0;JMP//done", assembler.LINE_INSTRUCTION, "0;JMP"},
	}

	for _, test := range tests {
		line := assembler.Preprocess(test.Raw, assembler.Cursor{Line: 1})

		if line.Type != test.Type {
			t.Errorf(
				"Line type mismatch for %q\nwant:%d\nhave:%d",
				test.Raw,
				test.Type,
				line.Type,
			)
		}

		if line.Value != test.Value {
			t.Errorf(
				"Line value mismatch for %q\nwant:%q\nhave:%q",
				test.Raw,
				test.Value,
				line.Value,
			)
		}
	}
}

func TestSymbolTable(t *testing.T) {
	symbols := assembler.NewSymbolTable()

	if size := symbols.Len(); size != 23 {
		t.Fatalf("Predefined symbol count mismatch\nwant:23\nhave:%d", size)
	}

	if addr, allocated := symbols.Resolve("x"); addr != 16 || !allocated {
		t.Fatalf("Variable mismatch\nwant:16 (allocated)\nhave:%d (%v)", addr, allocated)
	}

	if addr, allocated := symbols.Resolve("y"); addr != 17 || !allocated {
		t.Fatalf("Variable mismatch\nwant:17 (allocated)\nhave:%d (%v)", addr, allocated)
	}

	if addr, allocated := symbols.Resolve("x"); addr != 16 || allocated {
		t.Fatalf("Variable mismatch\nwant:16\nhave:%d (%v)", addr, allocated)
	}

	if existed := symbols.Define("KBD", 3); !existed {
		t.Fatal("Predefined symbol was not reported as existing")
	}

	if addr, _ := symbols.Lookup("KBD"); addr != 3 {
		t.Fatalf("Overwritten symbol mismatch\nwant:3\nhave:%d", addr)
	}

	if fresh := assembler.NewSymbolTable(); fresh.Len() != 23 {
		t.Fatal("Symbol tables share state")
	} else if addr, _ := fresh.Lookup("KBD"); addr != assembler.SYMBOL_KBD {
		t.Fatalf("Predefined symbol mismatch\nwant:%d\nhave:%d", assembler.SYMBOL_KBD, addr)
	}
}
