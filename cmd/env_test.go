package cmd

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/storage"
)

type closeCounter struct {
	storage.Backend
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestDieClosesOpenStorage(t *testing.T) {
	var code int
	prev := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit, opened = prev, nil })

	backend := &closeCounter{}
	e := &env{log: slog.New(slog.NewTextHandler(io.Discard, nil)), backend: backend}
	opened = e

	die(exitStorage, "boom")
	assert.Equal(t, exitStorage, code)
	assert.Equal(t, 1, backend.closed)
	assert.Nil(t, opened)

	e.Close()
	require.Equal(t, 1, backend.closed, "second close is a no-op")
}
