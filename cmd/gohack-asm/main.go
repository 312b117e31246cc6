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
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/lassandro/gohack/pkg/assembler"
)

var debugvar bool
var strictvar bool
var verbosevar bool
var outvar string

var rootCmd = &cobra.Command{
	Use:   "gohack-asm [--debug] [--strict] [--verbose] [-o|--out outfile] filename",
	Short: "Assembles Hack assembly into a .hack binary text file",
	Long: `gohack-asm translates a Hack assembly file into one 16-digit binary
word per instruction. The output is written next to the input, with
everything after the first '.' of the file name replaced by 'hack'.

Unknown mnemonics, oversized literals and redeclared labels are reported
as warnings and encoded as they are written. Use --strict to refuse to
write output when any are found.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gohackAsm(args[0])
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.hackdb'",
	)
	rootCmd.Flags().BoolVar(
		&strictvar, "strict", false,
		"Treats every diagnostic as fatal and writes no output",
	)
	rootCmd.Flags().BoolVarP(
		&verbosevar, "verbose", "v", false,
		"Prints the resolved labels and variables",
	)
	rootCmd.Flags().StringVarP(
		&outvar, "out", "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
}

// outputPath replaces everything after the first '.' of the file name
func outputPath(path string) (string, error) {
	dir, base := filepath.Split(path)
	name, _, found := strings.Cut(base, ".")

	if !found {
		return "", fmt.Errorf("%s has no file extension", base)
	}

	return dir + name + ".hack", nil
}

func printDiagnostic(err error, source []byte) {
	tokenErr, ok := err.(assembler.TokenError)

	if !ok {
		log.Println(err)
		return
	}

	cursor := tokenErr.GetPosition()

	line := source[cursor.LineByte:]
	if i := bytes.IndexByte(line, '\n'); i != -1 {
		line = line[:i]
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})

	indent := int(cursor.Byte-cursor.LineByte) + 1
	width := int(cursor.Size) - indent

	if width < 0 {
		width = 0
	}

	underlinefmt := fmt.Sprintf("%% %ds%s", indent, strings.Repeat("~", width))

	log.Printf(
		"%s\n%s\n\033[33m%s\033[0m",
		err,
		line,
		fmt.Sprintf(underlinefmt, "^"),
	)
}

func gohackAsm(infile string) error {
	if outvar == "" {
		var err error

		if outvar, err = outputPath(infile); err != nil {
			return err
		}
	}

	source, err := os.ReadFile(infile)

	if err != nil {
		return err
	}

	log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", filepath.Base(infile)))

	var debug *assembler.DebugTable

	if debugvar || verbosevar {
		abs, err := filepath.Abs(infile)

		if err != nil {
			log.Println(err)
			abs = ""
		}

		debug = assembler.NewDebugTable(abs)
	}

	result, errs := assembler.AssembleHackSource(bytes.NewReader(source), debug)

	for _, err := range errs {
		if _, ok := err.(assembler.TokenError); !ok {
			return err
		}

		printDiagnostic(err, source)
	}

	if strictvar && len(errs) > 0 {
		return fmt.Errorf("%d diagnostic(s), no output written", len(errs))
	}

	if verbosevar {
		pp.Fprintf(os.Stderr, "Labels: %v\n", debug.Labels)
		pp.Fprintf(os.Stderr, "Variables: %v\n", debug.Variables)
	}

	if err := os.WriteFile(outvar, []byte(result), 0666); err != nil {
		return fmt.Errorf("Error writing output file\n%w", err)
	}

	if debugvar {
		filename := filepath.Join(
			filepath.Dir(outvar),
			strings.TrimSuffix(filepath.Base(outvar), filepath.Ext(outvar))+".hackdb",
		)

		file, err := os.Create(filename)

		if err != nil {
			return fmt.Errorf("Error creating symbol table\n%w", err)
		}

		defer file.Close()

		if err := gob.NewEncoder(file).Encode(debug); err != nil {
			return fmt.Errorf("Error writing symbol table\n%w", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
