package command

import (
	"fmt"
	"strings"
)

// Ответы протокола.
const (
	ReplyOK      = "OK"
	ReplyFail    = "FAIL"
	ReplyUnknown = "UNKNOWN_COMMAND"
	errorPrefix  = "ERROR: "
)

// Error details must not break the one-line reply.
var oneLine = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Kind classifies how a command ended.
type Kind int

const (
	// KindOK: the command produced Reply. An empty Reply means "not found".
	KindOK Kind = iota
	// KindFail: the payload could not be parsed or named a missing record.
	KindFail
	// KindUnknown: no verb matched.
	KindUnknown
	// KindError: an unexpected failure while executing the command.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindFail:
		return "fail"
	case KindUnknown:
		return "unknown"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of one dispatched line.
type Result struct {
	Kind  Kind
	Verb  string
	Reply string
	Err   error
}

// Line renders the result as the single reply line sent to the client.
func (r Result) Line() string {
	switch r.Kind {
	case KindOK:
		return r.Reply
	case KindFail:
		return ReplyFail
	case KindUnknown:
		return ReplyUnknown
	default:
		if r.Err == nil {
			return errorPrefix + "unknown error"
		}
		return errorPrefix + oneLine.Replace(r.Err.Error())
	}
}

func ok(reply string) Result {
	return Result{Kind: KindOK, Reply: reply}
}

func fail(err error) Result {
	return Result{Kind: KindFail, Err: err}
}

func failure(err error) Result {
	return Result{Kind: KindError, Err: err}
}
