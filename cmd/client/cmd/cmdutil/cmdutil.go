// Package cmdutil содержит общее для подкоманд клиента: доступ к клиенту и вывод.
package cmdutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"linekeeper/internal/client"
)

type ctxKey struct{}

var ErrNoClient = errors.New("клиент не инициализирован")

func WithClient(ctx context.Context, c *client.Client) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func ClientFrom(ctx context.Context) (*client.Client, error) {
	c, ok := ctx.Value(ctxKey{}).(*client.Client)
	if !ok || c == nil {
		return nil, ErrNoClient
	}
	return c, nil
}

// Out is where commands print; tests swap it.
var Out io.Writer = os.Stdout

func Success(format string, args ...any) {
	fmt.Fprintln(Out, color.GreenString("✓ "+format, args...))
}

func Warn(format string, args ...any) {
	fmt.Fprintln(Out, color.YellowString(format, args...))
}

func JSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("некорректный идентификатор %q: %w", s, err)
	}
	return id, nil
}
