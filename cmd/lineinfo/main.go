/*
Command lineinfo loads a UTF-8 text file and prints how its lines map
between byte positions and character positions.

	lineinfo [--verify] [--width n] file
	lineinfo pos [--char n] [--byte n] file

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/linecoords"
	"github.com/npillmayer/linecoords/engine"
	"github.com/npillmayer/linecoords/textfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verify   bool
	width    int
	fragSize int64
	debug    bool
	charPos  int
	bytePos  int
)

var root = &cobra.Command{
	Use:          "lineinfo file",
	Short:        "print the line table of a text file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if verify {
			if err := doc.Check(); err != nil {
				return err
			}
		}
		printLines(cmd.OutOrStdout(), doc, previewWidth())
		return nil
	},
}

var pos = &cobra.Command{
	Use:          "pos file",
	Short:        "translate positions between bytes and characters",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if cmd.Flags().Changed("char") {
			b := doc.CharToBytePosition(charPos)
			line, col := doc.CharPositionToLineColumn(charPos)
			fmt.Fprintf(w, "char %d => byte %d (line %d, column %d)\n", charPos, b, line+1, col+1)
		}
		if cmd.Flags().Changed("byte") {
			c := doc.ByteToCharPosition(bytePos)
			line, col := doc.CharPositionToLineColumn(c)
			fmt.Fprintf(w, "byte %d => char %d (line %d, column %d)\n", bytePos, c, line+1, col+1)
		}
		return nil
	},
}

func init() {
	root.PersistentFlags().Int64Var(&fragSize, "frag", 0, "fragment size for loading, 0 for a default")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "trace to the console")
	root.Flags().BoolVar(&verify, "verify", false, "check the line index against the text")
	root.Flags().IntVar(&width, "width", 0, "width of line previews, 0 for the terminal width")
	pos.Flags().IntVar(&charPos, "char", 0, "character position to translate")
	pos.Flags().IntVar(&bytePos, "byte", 0, "byte position to translate")
	root.AddCommand(pos)
}

func main() {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	cobra.OnInitialize(func() {
		if debug {
			gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
			tracing.Select("linecoords").SetTraceLevel(tracing.LevelDebug)
		}
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// load reads a file into an engine buffer and attaches a document to it.
func load(ctx context.Context, name string) (*linecoords.Document, error) {
	l, err := textfile.Open(name, fragSize)
	if err != nil {
		return nil, err
	}
	buf := engine.New()
	doc := linecoords.Attach(buf)
	if err := l.LoadInto(ctx, buf); err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	gtrace.CoreTracer.Infof("loaded %s: %d bytes in %d chunks, %d chars, %d lines", name, buf.Len(),
		buf.ChunkCount(), doc.TextLength(), doc.Count())
	return doc, nil
}

func printLines(w io.Writer, doc *linecoords.Document, preview int) {
	grapheme.SetupGraphemeClasses()
	context := uax11.ContextFromEnvironment()
	wide := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(w, "%6s %8s %6s %8s %6s %6s  %s\n", "line", "char", "chars", "byte", "bytes", "cols", "text")
	for _, line := range doc.Lines() {
		start, length := line.ByteRange()
		text := strings.TrimSuffix(line.Text(), "\n")
		cols := uax11.StringWidth(grapheme.StringFromString(text), context)
		text = truncate(text, preview, context)
		if line.ContainsWideChar() {
			text = wide(text)
		}
		fmt.Fprintf(w, "%6d %8d %6d %8d %6d %6d  %s\n", line.Index()+1, line.Position(), line.Length(),
			start, length, cols, text)
	}
}

// previewWidth is the space left for line previews, after the columns of
// numbers.
func previewWidth() int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 60 {
			return w - 48
		}
	}
	return 12
}

// truncate cuts text to at most max display columns.
func truncate(text string, maxCols int, context *uax11.Context) string {
	var sb strings.Builder
	cols := 0
	for _, r := range text {
		c := uax11.StringWidth(grapheme.StringFromString(string(r)), context)
		if cols+c > maxCols {
			sb.WriteRune('…')
			break
		}
		cols += c
		sb.WriteRune(r)
	}
	return sb.String()
}
