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
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/minver/internal/report"
)

// Server collects unit reports sent by analysis processes.
//
// Connections are served one after another on a single goroutine, which owns
// the collected reports until [Server.Collect] returns them.
type Server struct {
	listener net.Listener
	group    *errgroup.Group
	logger   *slog.Logger

	reports []report.UnitReport
}

// Start binds a loopback listener on a free port and starts accepting connections.
//
// Cancelling ctx closes the listener. A nil logger discards log output.
func Start(ctx context.Context, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting report server: %w", err)
	}

	s := &Server{listener: listener, group: new(errgroup.Group), logger: logger}

	stop := context.AfterFunc(ctx, func() { _ = listener.Close() })

	s.group.Go(func() error {
		defer stop()

		return s.serve(ctx)
	})

	logger.Debug("Report server started", slog.String("addr", s.Addr()))

	return s, nil
}

// Addr returns the address analysis processes send their reports to.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Collect stops the server and returns all reports received.
//
// Every process sending reports must have finished before Collect is called,
// reports arriving after the stop signal are lost.
func (s *Server) Collect(ctx context.Context) ([]report.UnitReport, error) {
	if err := Send(ctx, s.Addr(), Message{Type: TypeStop}); err != nil {
		return nil, fmt.Errorf("stopping report server: %w", err)
	}

	if err := s.group.Wait(); err != nil {
		return nil, err
	}

	return s.reports, nil
}

func (s *Server) serve(ctx context.Context) error {
	defer s.listener.Close()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return fmt.Errorf("accepting connection: %w", err)
		}

		if s.handle(conn) {
			s.logger.Debug("Report server stopped", slog.Int("reports", len(s.reports)))

			return nil
		}
	}
}

// handle reads the single message of conn and reports whether it was the stop signal.
func (s *Server) handle(conn net.Conn) (stop bool) {
	defer conn.Close()

	m, err := ReadMessage(bufio.NewReader(conn))
	if err != nil {
		s.logger.Warn("Dropping malformed message",
			slog.String("remote", conn.RemoteAddr().String()),
			slog.Any("error", err))

		return false
	}

	switch m.Type {
	case TypeReport:
		s.reports = append(s.reports, *m.Report)
		s.logger.Debug("Report received",
			slog.String("unit", m.Report.Unit),
			slog.Int("capabilities", len(m.Report.Capabilities)))

		return false

	default: // TypeStop
		return true
	}
}
