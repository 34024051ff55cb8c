package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"linekeeper/internal/command"
	"linekeeper/internal/connlog"
)

// handleConnection reads one line, dispatches it, writes one reply and closes.
// The store is saved whatever happened.
func (s *Server) handleConnection(conn net.Conn) {
	ctx := context.Background()
	entry := newEntry(conn.RemoteAddr())

	defer func() {
		if p := recover(); p != nil {
			s.log.Error("connection handler panicked", "remote", entry.RemoteEndPoint, "panic", p)
			entry.Success = false
			entry.Exception = fmt.Sprint(p)
			s.connLog.Log(entry)
		}
		if err := s.saver.Save(ctx); err != nil {
			s.log.Error("failed to save store", "error", err)
		}
		conn.Close()
	}()

	if s.idleTimeout > 0 {
		conn.SetDeadline(time.Now().Add(s.idleTimeout))
	}

	msg, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.fail(entry, fmt.Errorf("read: %w", err))
		return
	}

	msg = strings.TrimRight(msg, "\r\n")
	if msg == "" {
		return
	}
	entry.Message = msg

	s.log.Info("message received", "remote", entry.RemoteEndPoint, "message", msg)

	res := s.dispatcher.Dispatch(ctx, msg)

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(res.Line() + "\n"); err != nil {
		s.fail(entry, fmt.Errorf("write: %w", err))
		return
	}
	if err := w.Flush(); err != nil {
		s.fail(entry, fmt.Errorf("write: %w", err))
		return
	}

	if res.Kind == command.KindError {
		s.fail(entry, res.Err)
		return
	}

	entry.Success = true
	s.connLog.Log(entry)
}

func (s *Server) fail(entry connlog.Entry, err error) {
	s.log.Warn("connection failed", "remote", entry.RemoteEndPoint, "error", err)
	entry.Success = false
	if err != nil {
		entry.Exception = err.Error()
	}
	s.connLog.Log(entry)
}

func newEntry(addr net.Addr) connlog.Entry {
	entry := connlog.Entry{
		Timestamp: time.Now().UTC(),
		IPAddress: "unknown",
	}
	if addr == nil {
		entry.RemoteEndPoint = "unknown"
		return entry
	}

	entry.RemoteEndPoint = addr.String()
	if tcp, ok := addr.(*net.TCPAddr); ok {
		entry.IPAddress = tcp.IP.String()
		entry.Port = tcp.Port
		return entry
	}
	if host, port, err := net.SplitHostPort(addr.String()); err == nil {
		entry.IPAddress = host
		entry.Port, _ = strconv.Atoi(port)
	}
	return entry
}
