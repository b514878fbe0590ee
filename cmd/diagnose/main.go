// Diagnostic tool for analyzing 3dm files
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	bin "github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/threedm"
)

func main() {
	var asJSON bool

	app := &cli.Command{
		Name:      "diagnose",
		Usage:     "Dump the chunk tree of a .3dm file",
		ArgsUsage: "<file.3dm>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the report as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("usage: diagnose [--json] <file.3dm>")
			}
			data, err := os.ReadFile(cmd.Args().First())
			if err != nil {
				return err
			}
			r := analyze(data)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			r.print(os.Stdout, cmd.Args().First())
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type report struct {
	FormatVersion int            `json:"format_version"`
	Size          int64          `json:"size"`
	Chunks        []chunk.Header `json:"chunks"`

	// EndMark is the value stored in the end-of-file chunk, if one was
	// found at the top level.
	EndMark *uint64 `json:"end_mark,omitempty"`

	Error string `json:"error,omitempty"`
}

func analyze(data []byte) *report {
	r := &report{Size: int64(len(data))}

	v, err := threedm.ParseHeader(data)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.FormatVersion = v

	cfg := bin.Config{LengthSize: 4}
	if v >= 5 {
		cfg.LengthSize = 8
	}
	body := data[threedm.HeaderSize:]
	r.Chunks, err = chunk.Scan(body, cfg)
	if err != nil {
		r.Error = err.Error()
	}

	for _, h := range r.Chunks {
		if h.Depth != 0 || h.Tag != chunk.TagEndOfFile || h.Content != int64(cfg.LengthSize) {
			continue
		}
		start := h.Offset + 4 + int64(cfg.LengthSize)
		raw := body[start : start+h.Content]
		var mark uint64
		if cfg.LengthSize == 8 {
			mark = binary.LittleEndian.Uint64(raw)
		} else {
			mark = uint64(binary.LittleEndian.Uint32(raw))
		}
		r.EndMark = &mark
	}
	return r
}

func (r *report) print(w io.Writer, name string) {
	fmt.Fprintf(w, "=== Analyzing %s ===\n\n", name)
	if r.FormatVersion == 0 {
		fmt.Fprintf(w, "ERROR: %s\n", r.Error)
		return
	}

	fmt.Fprintf(w, "Format version: %d\n", r.FormatVersion)
	fmt.Fprintf(w, "File size: %d\n\n", r.Size)

	for _, h := range r.Chunks {
		indent := strings.Repeat("  ", h.Depth)
		off := h.Offset + threedm.HeaderSize
		if h.Short {
			fmt.Fprintf(w, "%s%s @%d value=%d\n", indent, h.Name, off, h.Value)
			continue
		}
		crc := ""
		if h.CRC {
			crc = " crc"
		}
		fmt.Fprintf(w, "%s%s @%d content=%d%s\n", indent, h.Name, off, h.Content, crc)
	}

	if r.EndMark != nil {
		status := "OK"
		if int64(*r.EndMark) != r.Size {
			status = "MISMATCH"
		}
		fmt.Fprintf(w, "\nEnd mark: %d (%s)\n", *r.EndMark, status)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "\nERROR: %s\n", r.Error)
	}
}
