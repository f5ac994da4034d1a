package service_test

import (
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

// subscribe registers a buffered client on the env's hub
func subscribe(t *testing.T, env *testutil.TestEnv) <-chan sse.Event {
	t.Helper()
	c := &sse.Client{ID: t.Name(), Events: make(chan sse.Event, 16)}
	env.Hub.Register(c)
	t.Cleanup(func() { env.Hub.Unregister(c.ID) })
	return c.Events
}
