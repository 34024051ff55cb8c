package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"linekeeper/internal/command"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
	"linekeeper/internal/infrastructure/storage/file"
	"linekeeper/internal/server"
	"linekeeper/internal/store"
)

func startServer(t *testing.T) *Client {
	t.Helper()

	docs, err := file.New(t.TempDir(), slog.Default())
	require.NoError(t, err)
	st := store.New(docs, slog.Default(), store.WithSeeder(store.StaticSeeder{
		SeedLines: []line.Line{},
		SeedUsers: []user.User{},
	}))
	require.NoError(t, st.Load(context.Background()))

	srv := server.New("127.0.0.1:0", command.NewDispatcher(st, slog.Default()), st, slog.Default())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	return New(ln.Addr().String(), 5*time.Second)
}

func TestClient_Lines(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	lines, err := c.ListLines(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, found, err := c.DefaultLine(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.AddLine(ctx, line.Line{Name: "a", IPAddress: "10.0.0.1", Port: 1}))
	require.NoError(t, c.AddLine(ctx, line.Line{Name: "b", IPAddress: "10.0.0.2", Port: 2, IsDefault: true}))

	lines, err = c.ListLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	def, found, err := c.DefaultLine(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b", def.Name)

	a := lines[0]
	a.IsDefault = true
	require.NoError(t, c.UpdateLine(ctx, a))

	got, found, err := c.GetLine(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a, got)

	require.NoError(t, c.DeleteLine(ctx, a.ID))
	assert.ErrorIs(t, c.DeleteLine(ctx, a.ID), ErrFailed)

	_, found, err = c.GetLine(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_Users(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	require.NoError(t, c.AddUser(ctx, user.User{UserName: "erin", Password: "pw", AuthLevel: user.Foreman}))

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	u := users[0]
	u.Password = "changed"
	require.NoError(t, c.UpdateUser(ctx, u))

	got, found, err := c.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "changed", got.Password)

	assert.ErrorIs(t, c.UpdateUser(ctx, user.User{ID: uuid.New()}), ErrFailed)
	require.NoError(t, c.DeleteUser(ctx, u.ID))
}

func TestClient_SendRaw(t *testing.T) {
	c := startServer(t)

	reply, err := c.Send(context.Background(), "FOO_BAR")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN_COMMAND", reply)

	_, err = c.Send(context.Background(), "GET_ALL_LINES\nGET_DEFAULT")
	assert.Error(t, err)
}

func TestClient_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = New(addr, time.Second).Send(context.Background(), "GET_ALL_LINES")
	assert.Error(t, err)
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		reply    string
		expected error
	}{
		{reply: "OK"},
		{reply: "[]"},
		{reply: ""},
		{reply: "FAIL", expected: ErrFailed},
		{reply: "UNKNOWN_COMMAND", expected: ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckStatus(tt.reply))
		})
	}

	err := CheckStatus("ERROR: disk full")
	var replyErr *ReplyError
	require.True(t, errors.As(err, &replyErr))
	assert.Equal(t, "disk full", replyErr.Detail)
}
