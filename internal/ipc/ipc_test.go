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

package ipc_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/minver/internal/capability"
	. "fillmore-labs.com/minver/internal/ipc"
	"fillmore-labs.com/minver/internal/report"
)

func unitReport(unit string) report.UnitReport {
	return report.UnitReport{
		Unit: unit,
		Capabilities: []capability.Capability{
			{Name: capability.TypeParameters, Kind: capability.LanguageSyntax, Since: "1.18.0"},
		},
		Usages: map[string][]report.SourceLocation{
			capability.TypeParameters: {{File: unit + ".go", StartLine: 3, StartCol: 6, EndLine: 3, EndCol: 9}},
		},
	}
}

func TestMessageFraming(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := unitReport("example.com/a")
	require.NoError(t, WriteMessage(&buf, Message{Type: TypeReport, Report: &r}))

	size := binary.BigEndian.Uint32(buf.Bytes()[:4])
	assert.EqualValues(t, buf.Len()-4, size)

	got, err := ReadMessage(&buf)
	require.NoError(t, err)

	assert.Equal(t, TypeReport, got.Type)
	require.NotNil(t, got.Report)
	assert.Equal(t, r, *got.Report)
}

func TestReadMessageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		frame []byte
		want  error
	}{
		{"too large", []byte{0xff, 0xff, 0xff, 0xff}, ErrFrameTooLarge},
		{"garbage", []byte{0, 0, 0, 1, 0xc1}, ErrInvalidMessage},
		{"unknown type", []byte{0, 0, 0, 7, 0x81, 0xa4, 't', 'y', 'p', 'e', 0x09}, ErrInvalidMessage},
		{"truncated", []byte{0, 0, 0, 9, 0x81}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadMessage(bytes.NewReader(tt.frame))
			require.Error(t, err)

			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSendInvalid(t *testing.T) {
	t.Parallel()

	err := Send(t.Context(), "127.0.0.1:1", Message{Type: TypeReport})
	require.ErrorIs(t, err, ErrInvalidMessage)
}

func TestServerCollect(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	srv, err := Start(ctx, nil)
	require.NoError(t, err)

	const senders = 8

	var g errgroup.Group
	for i := range senders {
		g.Go(func() error {
			return SendReport(ctx, srv.Addr(), unitReport(fmt.Sprintf("example.com/p%d", i)))
		})
	}

	require.NoError(t, g.Wait())

	reports, err := srv.Collect(ctx)
	require.NoError(t, err)
	require.Len(t, reports, senders)

	units := make([]string, 0, len(reports))
	for _, r := range reports {
		units = append(units, r.Unit)
	}

	sort.Strings(units)
	assert.Equal(t, "example.com/p0", units[0])
	assert.Equal(t, "example.com/p7", units[senders-1])
}

func TestServerSurvivesMalformed(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	srv, err := Start(ctx, nil)
	require.NoError(t, err)

	var d net.Dialer

	conn, err := d.DialContext(ctx, "tcp", srv.Addr())
	require.NoError(t, err)

	_, err = conn.Write([]byte{0, 0, 0, 2, 0xc1})
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.NoError(t, SendReport(ctx, srv.Addr(), unitReport("example.com/ok")))

	reports, err := srv.Collect(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "example.com/ok", reports[0].Unit)
}
