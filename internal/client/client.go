// Package client speaks the line protocol: one connection, one request line,
// one reply line.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

var (
	ErrNoReply        = errors.New("server closed the connection without a reply")
	ErrFailed         = errors.New("server replied FAIL")
	ErrUnknownCommand = errors.New("server replied UNKNOWN_COMMAND")
)

// ReplyError is an "ERROR: <detail>" reply.
type ReplyError struct {
	Detail string
}

func (e *ReplyError) Error() string {
	return "server error: " + e.Detail
}

type Client struct {
	address string
	timeout time.Duration
}

func New(address string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{address: address, timeout: timeout}
}

// Send writes msg as one line and returns the reply without its line ending.
func (c *Client) Send(ctx context.Context, msg string) (string, error) {
	if strings.ContainsAny(msg, "\r\n") {
		return "", fmt.Errorf("message must be a single line")
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", c.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetDeadline(deadline)

	if _, err := io.WriteString(conn, msg+"\n"); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && reply == "" {
			return "", ErrNoReply
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read: %w", err)
		}
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// CheckStatus converts FAIL, UNKNOWN_COMMAND and ERROR replies into errors.
func CheckStatus(reply string) error {
	switch {
	case reply == "FAIL":
		return ErrFailed
	case reply == "UNKNOWN_COMMAND":
		return ErrUnknownCommand
	case strings.HasPrefix(reply, "ERROR: "):
		return &ReplyError{Detail: strings.TrimPrefix(reply, "ERROR: ")}
	default:
		return nil
	}
}
