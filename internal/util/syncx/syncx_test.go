// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"sync"
	"testing"

	"github.com/shilp-ai/creatorbot/internal/testutil"
)

func TestProtected(t *testing.T) {
	t.Parallel()

	t.Run("read access", func(t *testing.T) {
		p := Protect("@creator_bot")
		var got string
		p.RAccess(func(val string) { got = val })
		testutil.AssertEqual(t, got, "@creator_bot")
	})

	t.Run("concurrent access", func(t *testing.T) {
		counts := map[string]int{}
		p := Protect(counts)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Access(func(m map[string]int) { m["sent"]++ })
			}()
		}
		wg.Wait()

		var got int
		p.RAccess(func(m map[string]int) { got = m["sent"] })
		testutil.AssertEqual(t, got, 50)
	})
}

func TestLazy(t *testing.T) {
	t.Parallel()

	var (
		l     Lazy[int]
		calls int
	)
	f := func() int {
		calls++
		return calls
	}
	testutil.AssertEqual(t, l.Get(f), 1)
	testutil.AssertEqual(t, l.Get(f), 1)
	testutil.AssertEqual(t, calls, 1)
}
