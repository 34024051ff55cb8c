package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"linekeeper/internal/command"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
)

func (c *Client) ListLines(ctx context.Context) ([]line.Line, error) {
	var lines []line.Line
	return lines, c.query(ctx, command.VerbGetAllLines, &lines)
}

// GetLine returns found=false when the server has no such line.
func (c *Client) GetLine(ctx context.Context, id uuid.UUID) (line.Line, bool, error) {
	var l line.Line
	found, err := c.queryOne(ctx, command.VerbGetLineByID+id.String(), &l)
	return l, found, err
}

func (c *Client) DefaultLine(ctx context.Context) (line.Line, bool, error) {
	var l line.Line
	found, err := c.queryOne(ctx, command.VerbGetDefault, &l)
	return l, found, err
}

func (c *Client) AddLine(ctx context.Context, l line.Line) error {
	return c.mutate(ctx, command.VerbAddLine, l)
}

func (c *Client) UpdateLine(ctx context.Context, l line.Line) error {
	return c.mutate(ctx, command.VerbUpdateLine, l)
}

func (c *Client) DeleteLine(ctx context.Context, id uuid.UUID) error {
	return c.expectOK(ctx, command.VerbDeleteLine+id.String())
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	return users, c.query(ctx, command.VerbGetAllUsers, &users)
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (user.User, bool, error) {
	var u user.User
	found, err := c.queryOne(ctx, command.VerbGetUserByID+id.String(), &u)
	return u, found, err
}

func (c *Client) AddUser(ctx context.Context, u user.User) error {
	return c.mutate(ctx, command.VerbAddUser, u)
}

func (c *Client) UpdateUser(ctx context.Context, u user.User) error {
	return c.mutate(ctx, command.VerbUpdateUser, u)
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.expectOK(ctx, command.VerbDeleteUser+id.String())
}

func (c *Client) query(ctx context.Context, msg string, out any) error {
	reply, err := c.Send(ctx, msg)
	if err != nil {
		return err
	}
	if err := CheckStatus(reply); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}

func (c *Client) queryOne(ctx context.Context, msg string, out any) (bool, error) {
	reply, err := c.Send(ctx, msg)
	if err != nil {
		return false, err
	}
	if reply == "" {
		return false, nil
	}
	if err := CheckStatus(reply); err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return false, fmt.Errorf("decode reply: %w", err)
	}
	return true, nil
}

func (c *Client) mutate(ctx context.Context, verb string, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return c.expectOK(ctx, verb+string(payload))
}

func (c *Client) expectOK(ctx context.Context, msg string) error {
	reply, err := c.Send(ctx, msg)
	if err != nil {
		return err
	}
	if err := CheckStatus(reply); err != nil {
		return err
	}
	if reply != command.ReplyOK {
		return fmt.Errorf("unexpected reply %q", reply)
	}
	return nil
}
