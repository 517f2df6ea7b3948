// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package ipc transports unit reports from analysis processes to the process collecting them.
//
// Every connection carries exactly one [Message]: a 4-byte big-endian length
// followed by the MessagePack encoding of the message.
package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"fillmore-labs.com/minver/internal/report"
)

// MaxFrameSize is the largest message accepted.
const MaxFrameSize = 64 << 20

var (
	// ErrFrameTooLarge is returned for messages exceeding [MaxFrameSize].
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrInvalidMessage is returned for messages of unknown type or without payload.
	ErrInvalidMessage = errors.New("invalid message")
)

// MessageType distinguishes reports from the stop signal.
type MessageType uint8

const (
	// TypeReport carries a [report.UnitReport].
	TypeReport MessageType = 1 + iota

	// TypeStop tells the server to stop accepting connections.
	TypeStop
)

func (t MessageType) String() string {
	switch t {
	case TypeReport:
		return "report"
	case TypeStop:
		return "stop"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// Message is the unit of transmission.
type Message struct {
	Type   MessageType        `msgpack:"type"`
	Report *report.UnitReport `msgpack:"report,omitempty"`
}

// Validate checks that the message type is known and a report message carries a report.
func (m Message) Validate() error {
	switch m.Type {
	case TypeReport:
		if m.Report == nil {
			return fmt.Errorf("%w: report message without report", ErrInvalidMessage)
		}

		return nil

	case TypeStop:
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrInvalidMessage, m.Type)
	}
}

// WriteMessage writes one length-framed message to w.
func WriteMessage(w io.Writer, m Message) error {
	payload, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %s message: %w", m.Type, err)
	}

	size, err := safecast.Conv[uint32](len(payload))
	if err != nil || size > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	frame := make([]byte, 4, 4+len(payload))
	binary.BigEndian.PutUint32(frame, size)
	frame = append(frame, payload...)

	_, err = w.Write(frame)

	return err
}

// ReadMessage reads one length-framed message from r.
func ReadMessage(r io.Reader) (Message, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Message{}, fmt.Errorf("reading frame header: %w", err)
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return Message{}, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Message{}, fmt.Errorf("reading frame: %w", err)
	}

	var m Message
	if err := msgpack.Unmarshal(payload, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if err := m.Validate(); err != nil {
		return Message{}, err
	}

	return m, nil
}
