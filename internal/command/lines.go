package command

import (
	"context"

	"linekeeper/internal/domain/line"
)

func (d *Dispatcher) getAllLines(_ context.Context, _ string) Result {
	return encode(d.store.ListLines())
}

func (d *Dispatcher) getLineByID(_ context.Context, payload string) Result {
	id, err := parseID(payload)
	if err != nil {
		return ok("")
	}
	l, found := d.store.GetLine(id)
	if !found {
		return ok("")
	}
	return encode(l)
}

func (d *Dispatcher) getDefault(_ context.Context, _ string) Result {
	l, found := d.store.DefaultLine()
	if !found {
		return ok("")
	}
	return encode(l)
}

func (d *Dispatcher) addLine(ctx context.Context, payload string) Result {
	candidate, err := decode[line.Line](payload)
	if err != nil {
		return fail(err)
	}
	_, err = d.store.AddLine(ctx, *candidate)
	return storeResult(err)
}

func (d *Dispatcher) updateLine(ctx context.Context, payload string) Result {
	updated, err := decode[line.Line](payload)
	if err != nil {
		return fail(err)
	}
	return storeResult(d.store.UpdateLine(ctx, *updated))
}

func (d *Dispatcher) deleteLine(ctx context.Context, payload string) Result {
	id, err := parseID(payload)
	if err != nil {
		return fail(err)
	}
	return storeResult(d.store.DeleteLine(ctx, id))
}
