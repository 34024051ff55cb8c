package user

import "errors"

var ErrUnknownAuthLevel = errors.New("unknown authorization level")
