// Package command turns one protocol line into a store operation and a reply.
//
// A line is <VERB><payload>. Verbs are matched case-sensitively as exact
// prefixes, in table order; the payload is everything after the verb.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
	"linekeeper/internal/store"
)

const (
	VerbGetAllLines = "GET_ALL_LINES"
	VerbGetLineByID = "GET_LINE_BY_ID"
	VerbGetDefault  = "GET_DEFAULT"
	VerbAddLine     = "ADD_LINE"
	VerbUpdateLine  = "UPDATE_LINE"
	VerbDeleteLine  = "DELETE_LINE"
	VerbGetAllUsers = "GET_ALL_USERS"
	VerbGetUserByID = "GET_USER_BY_ID"
	VerbAddUser     = "ADD_USER"
	VerbUpdateUser  = "UPDATE_USER"
	VerbDeleteUser  = "DELETE_USER"
)

// Store is the part of the record store the dispatcher needs.
type Store interface {
	ListLines() []line.Line
	GetLine(id uuid.UUID) (line.Line, bool)
	DefaultLine() (line.Line, bool)
	AddLine(ctx context.Context, candidate line.Line) (line.Line, error)
	UpdateLine(ctx context.Context, updated line.Line) error
	DeleteLine(ctx context.Context, id uuid.UUID) error

	ListUsers() []user.User
	GetUser(id uuid.UUID) (user.User, bool)
	AddUser(ctx context.Context, candidate user.User) (user.User, error)
	UpdateUser(ctx context.Context, updated user.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type handlerFunc func(ctx context.Context, payload string) Result

type route struct {
	verb   string
	handle handlerFunc
}

type Dispatcher struct {
	store  Store
	log    *slog.Logger
	routes []route
}

func NewDispatcher(st Store, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		store: st,
		log:   log.With("component", "dispatcher"),
	}
	d.routes = []route{
		{VerbGetAllLines, d.getAllLines},
		{VerbGetLineByID, d.getLineByID},
		{VerbGetDefault, d.getDefault},
		{VerbAddLine, d.addLine},
		{VerbUpdateLine, d.updateLine},
		{VerbDeleteLine, d.deleteLine},
		{VerbGetAllUsers, d.getAllUsers},
		{VerbGetUserByID, d.getUserByID},
		{VerbAddUser, d.addUser},
		{VerbUpdateUser, d.updateUser},
		{VerbDeleteUser, d.deleteUser},
	}
	return d
}

// Verbs returns the recognised verbs in matching order.
func (d *Dispatcher) Verbs() []string {
	verbs := make([]string, len(d.routes))
	for i, r := range d.routes {
		verbs[i] = r.verb
	}
	return verbs
}

// Dispatch executes msg. It never panics; every failure is folded into the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, msg string) (res Result) {
	for _, r := range d.routes {
		if !strings.HasPrefix(msg, r.verb) {
			continue
		}

		defer func() {
			if p := recover(); p != nil {
				d.log.Error("command panicked", "verb", r.verb, "panic", p)
				res = failure(fmt.Errorf("%v", p))
			}
			res.Verb = r.verb
			d.log.Debug("command dispatched", "verb", r.verb, "kind", res.Kind)
		}()

		return r.handle(ctx, msg[len(r.verb):])
	}

	return Result{Kind: KindUnknown}
}

// storeResult maps a store error to a reply: a missing record is FAIL,
// anything else is an unexpected error.
func storeResult(err error) Result {
	switch {
	case err == nil:
		return ok(ReplyOK)
	case errors.Is(err, store.ErrNotFound):
		return fail(err)
	default:
		return failure(err)
	}
}

func encode(v any) Result {
	data, err := json.Marshal(v)
	if err != nil {
		return failure(fmt.Errorf("encode reply: %w", err))
	}
	return ok(string(data))
}

// decode parses a JSON object payload. A literal null is rejected.
func decode[T any](payload string) (*T, error) {
	var v *T
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("empty record")
	}
	return v, nil
}

// parseID accepts only the canonical 36-character hyphenated form.
func parseID(payload string) (uuid.UUID, error) {
	if len(payload) != 36 {
		return uuid.Nil, fmt.Errorf("invalid identifier %q", payload)
	}
	return uuid.Parse(payload)
}
