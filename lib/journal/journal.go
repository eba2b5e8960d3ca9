// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal provides an append-only record log: CBOR records in
// a zstd-compressed file. The daemon journals every applied update so
// a session can be replayed for debugging; the format is generic and
// carries any CBOR-marshalable record type.
//
// Each Writer session appends one zstd frame; concatenated frames
// decode transparently, so a reopened journal replays all sessions in
// order.
package journal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/buoy-foundation/buoy/lib/clock"
	"github.com/buoy-foundation/buoy/lib/codec"
)

// Options configures a Writer.
type Options struct {
	// Clock drives the periodic flush. Nil means clock.Real().
	Clock clock.Clock

	// FlushInterval is how often buffered records are flushed to the
	// file. Zero disables the periodic flush; records then reach disk
	// on Close or an explicit Flush.
	FlushInterval time.Duration

	// Logger receives flush failures. Nil means slog.Default().
	Logger *slog.Logger
}

// Writer appends CBOR records to a zstd-compressed journal file.
// Safe for concurrent use.
type Writer struct {
	logger *slog.Logger

	mu      sync.Mutex
	file    *os.File
	zstd    *zstd.Encoder
	closed  bool
	ticker  *clock.Ticker
	quit    chan struct{}
	stopped chan struct{}
}

// Open opens (creating if needed) the journal at path for appending
// and starts the periodic flush.
func Open(path string, opts Options) (*Writer, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("initializing journal compressor: %w", err)
	}

	w := &Writer{
		logger:  opts.Logger,
		file:    file,
		zstd:    encoder,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	if opts.FlushInterval > 0 {
		w.ticker = opts.Clock.NewTicker(opts.FlushInterval)
		go w.flushLoop()
	} else {
		close(w.stopped)
	}
	return w, nil
}

// Append encodes one record into the journal. The record reaches disk
// on the next flush.
func (w *Writer) Append(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("journal: writer is closed")
	}
	if err := codec.NewEncoder(w.zstd).Encode(record); err != nil {
		return fmt.Errorf("encoding journal record: %w", err)
	}
	return nil
}

// Flush pushes buffered records through the compressor to the file.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("journal: writer is closed")
	}
	return w.flushLocked()
}

func (w *Writer) flushLocked() error {
	if err := w.zstd.Flush(); err != nil {
		return fmt.Errorf("flushing journal: %w", err)
	}
	return nil
}

// Close flushes, finishes the zstd frame, and closes the file. The
// Writer is unusable afterwards.
func (w *Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.quit)
	w.mu.Unlock()
	<-w.stopped

	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	if err := w.zstd.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing journal compressor: %w", err))
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing journal file: %w", err))
	}
	return errors.Join(errs...)
}

// flushLoop runs the periodic flush until Close signals quit.
func (w *Writer) flushLoop() {
	defer close(w.stopped)
	for {
		select {
		case <-w.quit:
			return
		case <-w.ticker.C:
			w.mu.Lock()
			if !w.closed {
				if err := w.flushLocked(); err != nil {
					w.logger.Warn("journal flush failed", "error", err)
				}
			}
			w.mu.Unlock()
		}
	}
}

// Reader replays a journal file record by record.
type Reader struct {
	file    *os.File
	zstd    *zstd.Decoder
	decoder *codec.Decoder
}

// OpenReader opens the journal at path for replay.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	decoder, err := zstd.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("initializing journal decompressor: %w", err)
	}
	return &Reader{
		file:    file,
		zstd:    decoder,
		decoder: codec.NewDecoder(decoder),
	}, nil
}

// Next decodes the next record into record. Returns io.EOF at the end
// of the journal.
func (r *Reader) Next(record any) error {
	if err := r.decoder.Decode(record); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("decoding journal record: %w", err)
	}
	return nil
}

// Close releases the decompressor and file.
func (r *Reader) Close() error {
	r.zstd.Close()
	return r.file.Close()
}
