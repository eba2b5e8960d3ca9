// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame type constants for the subscriber stream. Each frame is a
// 5-byte header (1 byte type + 4 byte big-endian payload length)
// followed by a CBOR payload.
const (
	// FrameTypeHello carries a SnapshotPayload. Sent once per
	// subscription, before any update frames, so a late subscriber can
	// reconstruct the current stack.
	FrameTypeHello byte = 0x01

	// FrameTypeUpdate carries an UpdatePayload: one collection diff.
	FrameTypeUpdate byte = 0x02

	// FrameTypeIME carries an IMEPayload: the input method showed or
	// hid while bubbles exist.
	FrameTypeIME byte = 0x03
)

// frameHeaderLength is the fixed size of a frame header: 1 byte type
// + 4 bytes payload length.
const frameHeaderLength = 5

// maxFramePayload bounds a single frame. 4 MB covers any realistic
// snapshot; a full stack of five bubbles encodes in a few kilobytes.
const maxFramePayload = 4 * 1024 * 1024

// Frame is one stream message.
type Frame struct {
	Type    byte
	Payload []byte
}

// WriteFrame writes a framed message to w. The frame format is:
// [1 byte type] [4 bytes payload length, big-endian uint32] [payload].
func WriteFrame(w io.Writer, frame Frame) error {
	var header [frameHeaderLength]byte
	header[0] = frame.Type
	binary.BigEndian.PutUint32(header[1:5], uint32(len(frame.Payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if len(frame.Payload) > 0 {
		if _, err := w.Write(frame.Payload); err != nil {
			return fmt.Errorf("write frame payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads a framed message from r. Returns an error if the
// stream is malformed or the payload exceeds maxFramePayload.
func ReadFrame(r io.Reader) (Frame, error) {
	var header [frameHeaderLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, fmt.Errorf("read frame header: %w", err)
	}
	frameType := header[0]
	payloadLength := binary.BigEndian.Uint32(header[1:5])
	if payloadLength > maxFramePayload {
		return Frame{}, fmt.Errorf("payload length %d exceeds maximum %d", payloadLength, maxFramePayload)
	}
	payload := make([]byte, payloadLength)
	if payloadLength > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, fmt.Errorf("read frame payload: %w", err)
		}
	}
	return Frame{Type: frameType, Payload: payload}, nil
}
