package user

import (
	"encoding/json"

	"github.com/google/uuid"
)

// User - запись авторизации. Пароль хранится в открытом виде.
type User struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"userName"`
	Password  string    `json:"password"`
	AuthLevel AuthLevel `json:"authLevel"`
}

// UnmarshalJSON defaults AuthLevel to Operator when the field is absent.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	p := plain{AuthLevel: Operator}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = User(p)
	return nil
}

// Clone returns a copy of users that shares no backing array with the input.
func Clone(users []User) []User {
	out := make([]User, len(users))
	copy(out, users)
	return out
}

// IndexOf returns the position of the user with id, or -1.
func IndexOf(users []User, id uuid.UUID) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
