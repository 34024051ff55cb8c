package command

import (
	"context"

	"linekeeper/internal/domain/user"
)

func (d *Dispatcher) getAllUsers(_ context.Context, _ string) Result {
	return encode(d.store.ListUsers())
}

func (d *Dispatcher) getUserByID(_ context.Context, payload string) Result {
	id, err := parseID(payload)
	if err != nil {
		return ok("")
	}
	u, found := d.store.GetUser(id)
	if !found {
		return ok("")
	}
	return encode(u)
}

func (d *Dispatcher) addUser(ctx context.Context, payload string) Result {
	candidate, err := decode[user.User](payload)
	if err != nil {
		return fail(err)
	}
	_, err = d.store.AddUser(ctx, *candidate)
	return storeResult(err)
}

func (d *Dispatcher) updateUser(ctx context.Context, payload string) Result {
	updated, err := decode[user.User](payload)
	if err != nil {
		return fail(err)
	}
	return storeResult(d.store.UpdateUser(ctx, *updated))
}

func (d *Dispatcher) deleteUser(ctx context.Context, payload string) Result {
	id, err := parseID(payload)
	if err != nil {
		return fail(err)
	}
	return storeResult(d.store.DeleteUser(ctx, id))
}
