package user

import (
	"fmt"
	"strings"
)

type AuthLevel int

const (
	Admin AuthLevel = iota
	Foreman
	Maintenance
	Supervisor
	Engineer
	Operator
	Designer
	Manager
	View
)

var levelNames = [...]string{
	Admin:       "Admin",
	Foreman:     "Foreman",
	Maintenance: "Maintenance",
	Supervisor:  "Supervisor",
	Engineer:    "Engineer",
	Operator:    "Operator",
	Designer:    "Designer",
	Manager:     "Manager",
	View:        "View",
}

// Levels returns every authorization level in declaration order.
func Levels() []AuthLevel {
	out := make([]AuthLevel, len(levelNames))
	for i := range levelNames {
		out[i] = AuthLevel(i)
	}
	return out
}

func (l AuthLevel) Valid() bool {
	return l >= Admin && l <= View
}

func (l AuthLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("AuthLevel(%d)", int(l))
	}
	return levelNames[l]
}

// ParseAuthLevel matches a level name case-insensitively.
func ParseAuthLevel(s string) (AuthLevel, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return AuthLevel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAuthLevel, s)
}

func (l AuthLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAuthLevel, int(l))
	}
	return []byte(levelNames[l]), nil
}

func (l *AuthLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseAuthLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
