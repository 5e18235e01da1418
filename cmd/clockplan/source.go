package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"clocktree-go/boards"
	"clocktree-go/console"
	"clocktree-go/errcode"
)

// source selects a board preset or a YAML board file.
type source struct {
	board string
	file  string
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.board, "board", "b", boards.Disco168.Name, "board preset (see 'clockplan boards')")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "YAML board file; overrides --board")
}

func (s *source) load() (boards.Board, error) {
	if s.file != "" {
		f, err := os.Open(s.file)
		if err != nil {
			return boards.Board{}, err
		}
		defer f.Close()
		return boards.Load(f)
	}
	b, ok := boards.Lookup(s.board)
	if !ok {
		return boards.Board{}, errcode.Wrap(errcode.InvalidParams, "clockplan", "unknown board "+s.board)
	}
	return b, nil
}

// stdoutUART lets the console package print to a command's output.
type stdoutUART struct{ io.Writer }

func (stdoutUART) Read(p []byte) (int, error) { return 0, io.EOF }
func (stdoutUART) Buffered() int              { return 0 }

func consoleFor(cmd *cobra.Command) *console.Console {
	return console.New(stdoutUART{cmd.OutOrStdout()})
}
