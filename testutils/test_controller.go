package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles the fakes a controller needs in integration tests.
type TestController struct {
	Clock    *clock.Mock
	fakeESPN *FakeESPNServer
}

func (c *TestController) Close() {
	c.fakeESPN.Close()
}

func (c *TestController) ESPNURL() string {
	return c.fakeESPN.URL()
}

func NewTestController(db *TestDB) *TestController {
	return &TestController{
		Clock:    db.Clock,
		fakeESPN: NewFakeESPNServer(),
	}
}
