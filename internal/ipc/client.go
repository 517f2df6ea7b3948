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

package ipc

import (
	"context"
	"fmt"
	"net"

	"fillmore-labs.com/minver/internal/report"
)

// Send connects to addr and transmits m.
func Send(ctx context.Context, addr string, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var d net.Dialer

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to report server %s: %w", addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline) // best effort
	}

	if err := WriteMessage(conn, m); err != nil {
		_ = conn.Close()

		return fmt.Errorf("sending %s to %s: %w", m.Type, addr, err)
	}

	return conn.Close()
}

// SendReport transmits r to the server at addr.
func SendReport(ctx context.Context, addr string, r report.UnitReport) error {
	return Send(ctx, addr, Message{Type: TypeReport, Report: &r})
}
