package threedm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-3dm/internal/alloc"
	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/internal/logger"
	"github.com/robert-malhotra/go-3dm/scene"
)

// archive is the state of one write.
type archive struct {
	w      *binary.Writer
	cfg    binary.Config
	fc     scene.FileContext
	opts   *writeOptions
	scene  scene.Scene
	ledger *alloc.Ledger
	log    logger.Logger

	written int
	skipped int
}

// Write encodes s as a 3dm archive to w. The sink is only appended to.
// On error the bytes already written form an invalid archive and should be
// discarded.
func Write(w io.Writer, s scene.Scene, opts ...WriteOption) error {
	if s == nil {
		return ErrNilScene
	}
	options := defaultWriteOptions()
	for _, opt := range opts {
		opt(options)
	}
	if err := options.validate(); err != nil {
		return err
	}

	fc := scene.FileContext{
		FormatVersion:   options.formatVersion,
		EncoderRevision: options.encoderRevision,
	}
	cfg := binary.Config{LengthSize: fc.LengthSize()}

	a := &archive{
		w:      binary.NewWriter(w, cfg),
		cfg:    cfg,
		fc:     fc,
		opts:   options,
		scene:  s,
		ledger: alloc.New(0),
		log:    options.log.With("format", fc.FormatVersion),
	}
	return a.write()
}

func (a *archive) write() error {
	if err := a.w.WriteBytes(startBanner(a.fc.FormatVersion)); err != nil {
		return fmt.Errorf("writing start banner: %w", err)
	}
	a.ledger.Record(HeaderSize, "start")
	if err := a.ledger.Check(a.w.Pos()); err != nil {
		return err
	}

	text := defaultComment()
	if a.opts.comment != nil {
		text = *a.opts.comment
	}
	comment, err := commentBlock(text)
	if err != nil {
		return fmt.Errorf("building comment: %w", err)
	}
	if err := a.emit("comment", comment); err != nil {
		return err
	}

	for _, s := range a.sections() {
		c, err := s.build()
		if err != nil {
			return fmt.Errorf("building %s table: %w", s.name, err)
		}
		if err := a.emit(s.name, c); err != nil {
			return err
		}
	}

	eof, err := a.endOfFile()
	if err != nil {
		return fmt.Errorf("building end mark: %w", err)
	}
	if err := a.emit("end of file", eof); err != nil {
		return err
	}

	if err := a.ledger.Validate(); err != nil {
		return err
	}
	stats := a.ledger.Stats()
	a.log.Debug("archive written",
		"bytes", a.w.Pos(),
		"objects", a.written,
		"skipped", a.skipped,
		"spans", stats.TotalSpans,
		"span_bytes", stats.TotalBytes,
		"largest_span", stats.LargestSpan,
	)
	return nil
}

// emit writes one top-level chunk and checks the ledger against the
// writer's byte count.
func (a *archive) emit(name string, c *chunk.Chunk) error {
	addr := a.ledger.Record(uint64(c.EncodedSize(a.cfg.LengthSize)), name)
	if err := chunk.Write(a.w, c); err != nil {
		return fmt.Errorf("writing %s (%s): %w", name, c.Tag, err)
	}
	if err := a.ledger.Check(a.w.Pos()); err != nil {
		return fmt.Errorf("writing %s (%s): %w", name, c.Tag, err)
	}
	a.log.Debug("table written", "table", name, "offset", addr, "end", a.ledger.EOFAddr())
	return nil
}

// Create writes s to the named file. The file is removed if the write
// fails.
func Create(path string, s scene.Scene, opts ...WriteOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, s, opts...); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
