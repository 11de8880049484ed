package investing

import (
	"context"
	"testing"
)

// testContext stands in for testing.T.Context (Go 1.24+), which is not
// available on the Go 1.21 toolchain: the returned context is canceled
// when the test finishes.
func testContext(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
