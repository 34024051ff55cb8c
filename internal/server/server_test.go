package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"linekeeper/internal/client"
	"linekeeper/internal/command"
	"linekeeper/internal/connlog"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
	"linekeeper/internal/infrastructure/storage/file"
	"linekeeper/internal/store"
)

type recordingLog struct {
	mu      sync.Mutex
	entries []connlog.Entry
}

func (r *recordingLog) Log(e connlog.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *recordingLog) all() []connlog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]connlog.Entry(nil), r.entries...)
}

type countingSaver struct {
	Saver
	calls atomic.Int32
}

func (c *countingSaver) Save(ctx context.Context) error {
	c.calls.Add(1)
	return c.Saver.Save(ctx)
}

type fixture struct {
	addr   string
	srv    *Server
	store  *store.Store
	saver  *countingSaver
	connLg *recordingLog
	client *client.Client
}

func startTestServer(t *testing.T, dispatcher func(*store.Store) Dispatcher) *fixture {
	t.Helper()

	docs, err := file.New(t.TempDir(), slog.Default())
	require.NoError(t, err)
	st := store.New(docs, slog.Default(), store.WithSeeder(store.StaticSeeder{
		SeedLines: []line.Line{},
		SeedUsers: []user.User{},
	}))
	require.NoError(t, st.Load(context.Background()))

	var d Dispatcher = command.NewDispatcher(st, slog.Default())
	if dispatcher != nil {
		d = dispatcher(st)
	}

	saver := &countingSaver{Saver: st}
	connLg := &recordingLog{}
	srv := New("127.0.0.1:0", d, saver, slog.Default(), WithConnectionLog(connLg))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		<-served
	})

	addr := ln.Addr().String()
	return &fixture{
		addr:   addr,
		srv:    srv,
		store:  st,
		saver:  saver,
		connLg: connLg,
		client: client.New(addr, 5*time.Second),
	}
}

func (f *fixture) send(t *testing.T, msg string) string {
	t.Helper()
	reply, err := f.client.Send(context.Background(), msg)
	require.NoError(t, err)
	return reply
}

// waitFor polls until cond holds; the handler saves and logs after replying.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 5*time.Second, 5*time.Millisecond)
}

func TestServer_RoundTrip(t *testing.T) {
	f := startTestServer(t, nil)

	assert.Equal(t, "[]", f.send(t, "GET_ALL_LINES"))
	assert.Equal(t, "OK", f.send(t, `ADD_LINE{"name":"L1","ipAddress":"10.0.0.1","portnumber":502,"isDefault":false}`))

	lines := f.store.ListLines()
	require.Len(t, lines, 1)

	reply := f.send(t, "GET_LINE_BY_ID"+lines[0].ID.String())
	var got line.Line
	require.NoError(t, json.Unmarshal([]byte(reply), &got))
	assert.Equal(t, "L1", got.Name)
	assert.Equal(t, 502, got.Port)
	assert.True(t, got.IsDefault)

	assert.Equal(t, reply, f.send(t, "GET_DEFAULT"))
}

func TestServer_ReplyVocabulary(t *testing.T) {
	f := startTestServer(t, nil)

	tests := []struct {
		msg      string
		expected string
	}{
		{msg: "FOO_BAR", expected: "UNKNOWN_COMMAND"},
		{msg: "ADD_LINE{not valid json}", expected: "FAIL"},
		{msg: "DELETE_LINE123", expected: "FAIL"},
		{msg: "GET_DEFAULT", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.send(t, tt.msg))
		})
	}
	assert.Empty(t, f.store.ListLines())
}

func TestServer_EmptyLineGetsNoReply(t *testing.T) {
	f := startTestServer(t, nil)

	conn, err := net.Dial("tcp", f.addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = io.WriteString(conn, "\n")
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	data, err := io.ReadAll(conn)
	require.NoError(t, err)
	assert.Empty(t, data)

	waitFor(t, func() bool { return f.saver.calls.Load() == 1 })
	assert.Empty(t, f.connLg.all())
}

func TestServer_ClientClosesWithoutData(t *testing.T) {
	f := startTestServer(t, nil)

	conn, err := net.Dial("tcp", f.addr)
	require.NoError(t, err)
	conn.Close()

	waitFor(t, func() bool { return f.saver.calls.Load() == 1 })
}

func TestServer_LineWithoutNewlineAtEOF(t *testing.T) {
	f := startTestServer(t, nil)

	conn, err := net.Dial("tcp", f.addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = io.WriteString(conn, "GET_ALL_USERS")
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	reply, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[]\n", reply)
}

func TestServer_CRLFLineEnding(t *testing.T) {
	f := startTestServer(t, nil)

	conn, err := net.Dial("tcp", f.addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = io.WriteString(conn, "GET_ALL_LINES\r\n")
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	reply, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[]\n", reply)
}

func TestServer_SavesAndLogsEveryConnection(t *testing.T) {
	f := startTestServer(t, nil)

	f.send(t, "GET_ALL_LINES")
	f.send(t, "FOO_BAR")
	f.send(t, `ADD_USER{"userName":"dave","password":"pw","authLevel":"View"}`)

	waitFor(t, func() bool { return f.saver.calls.Load() == 3 && len(f.connLg.all()) == 3 })

	for _, e := range f.connLg.all() {
		assert.True(t, e.Success)
		assert.Equal(t, "127.0.0.1", e.IPAddress)
		assert.NotZero(t, e.Port)
		assert.Equal(t, fmt.Sprintf("%s:%d", e.IPAddress, e.Port), e.RemoteEndPoint)
		assert.NotEmpty(t, e.Message)
	}
}

type brokenDispatcher struct{}

func (brokenDispatcher) Dispatch(context.Context, string) command.Result {
	return command.Result{Kind: command.KindError, Err: fmt.Errorf("lines document is corrupt")}
}

func TestServer_DispatchErrorIsReportedAndLogged(t *testing.T) {
	f := startTestServer(t, func(*store.Store) Dispatcher { return brokenDispatcher{} })

	assert.Equal(t, "ERROR: lines document is corrupt", f.send(t, "GET_ALL_LINES"))

	waitFor(t, func() bool { return len(f.connLg.all()) == 1 })
	e := f.connLg.all()[0]
	assert.False(t, e.Success)
	assert.Equal(t, "GET_ALL_LINES", e.Message)
	assert.Equal(t, "lines document is corrupt", e.Exception)
	waitFor(t, func() bool { return f.saver.calls.Load() == 1 })
}

type panickingDispatcher struct{}

func (panickingDispatcher) Dispatch(context.Context, string) command.Result {
	panic("dispatcher exploded")
}

func TestServer_HandlerPanicDoesNotStopServer(t *testing.T) {
	f := startTestServer(t, func(*store.Store) Dispatcher { return panickingDispatcher{} })

	_, err := f.client.Send(context.Background(), "GET_ALL_LINES")
	assert.ErrorIs(t, err, client.ErrNoReply)

	waitFor(t, func() bool { return len(f.connLg.all()) == 1 })
	assert.Equal(t, "dispatcher exploded", f.connLg.all()[0].Exception)
	waitFor(t, func() bool { return f.saver.calls.Load() == 1 })

	_, err = f.client.Send(context.Background(), "GET_ALL_LINES")
	assert.ErrorIs(t, err, client.ErrNoReply, "the listener keeps accepting")
}

func TestServer_ConcurrentAddLine(t *testing.T) {
	f := startTestServer(t, nil)
	const n = 50

	var wg sync.WaitGroup
	var okCount atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf(`ADD_LINE{"name":"line-%d","ipAddress":"10.0.0.%d","portnumber":%d,"isDefault":%t}`,
				i, i%250, 1000+i, i%7 == 0)
			reply, err := f.client.Send(context.Background(), msg)
			if assert.NoError(t, err) && reply == "OK" {
				okCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(n), okCount.Load())

	var lines []line.Line
	require.NoError(t, json.Unmarshal([]byte(f.send(t, "GET_ALL_LINES")), &lines))
	assert.Len(t, lines, n)
	assert.Equal(t, 1, line.CountDefaults(lines))
}

func TestServer_IdleTimeout(t *testing.T) {
	docs, err := file.New(t.TempDir(), slog.Default())
	require.NoError(t, err)
	st := store.New(docs, slog.Default(), store.WithSeeder(store.StaticSeeder{}))
	require.NoError(t, st.Load(context.Background()))

	connLg := &recordingLog{}
	srv := New("127.0.0.1:0", command.NewDispatcher(st, slog.Default()), st, slog.Default(),
		WithConnectionLog(connLg), WithIdleTimeout(50*time.Millisecond))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)
	defer srv.Shutdown(context.Background())

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return len(connLg.all()) == 1 }, 5*time.Second, 5*time.Millisecond)
	e := connLg.all()[0]
	assert.False(t, e.Success)
	assert.True(t, strings.HasPrefix(e.Exception, "read:"), e.Exception)
}

func TestServer_ShutdownStopsServe(t *testing.T) {
	docs, err := file.New(t.TempDir(), slog.Default())
	require.NoError(t, err)
	st := store.New(docs, slog.Default(), store.WithSeeder(store.StaticSeeder{}))

	srv := New("127.0.0.1:0", command.NewDispatcher(st, slog.Default()), st, slog.Default())
	assert.Nil(t, srv.Addr())

	served := make(chan error, 1)
	go func() { served <- srv.ListenAndServe() }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, 5*time.Second, 5*time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestNewEntry(t *testing.T) {
	e := newEntry(&net.TCPAddr{IP: net.ParseIP("192.168.1.20"), Port: 40000})
	assert.Equal(t, "192.168.1.20", e.IPAddress)
	assert.Equal(t, 40000, e.Port)
	assert.Equal(t, "192.168.1.20:40000", e.RemoteEndPoint)

	e = newEntry(nil)
	assert.Equal(t, "unknown", e.IPAddress)
	assert.Equal(t, "unknown", e.RemoteEndPoint)
}
