package benchmarks

import (
	"fmt"
	"testing"

	"github.com/comalice/storebind"
	"github.com/comalice/storebind/testutil"
)

// BenchmarkGatedUpdate measures the cost of a store change the derivation
// does not care about: one detection pass, no render.
func BenchmarkGatedUpdate(b *testing.B) {
	store := NewBagStore(storebind.Props{"watched": 0, "ignored": 0})
	provider, _ := storebind.NewProvider(store)
	host := testutil.NewRecordingHost()
	if _, err := MountFan(host, provider.Mount(), "watched", 1); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.Dispatch(storebind.Props{"ignored": i})
	}
}

// BenchmarkRenderingUpdate measures a full relevant update: detection pass,
// scheduled render, commit.
func BenchmarkRenderingUpdate(b *testing.B) {
	store := NewBagStore(storebind.Props{"watched": 0})
	provider, _ := storebind.NewProvider(store)
	host := testutil.NewRecordingHost()
	if _, err := MountFan(host, provider.Mount(), "watched", 1); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.Dispatch(storebind.Props{"watched": i})
		host.Flush()
	}
}

func BenchmarkCascadeDepth(b *testing.B) {
	for _, depth := range []int{4, 16, 64} {
		b.Run(fmt.Sprintf("depth_%d", depth), func(b *testing.B) {
			store := NewBagStore(storebind.Props{"watched": 0})
			provider, _ := storebind.NewProvider(store)
			host := testutil.NewRecordingHost()
			if _, err := MountChain(host, provider.Mount(), "watched", depth); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				store.Dispatch(storebind.Props{"watched": i})
				host.Flush()
			}
		})
	}
}

func BenchmarkFanoutWidth(b *testing.B) {
	for _, width := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("width_%d", width), func(b *testing.B) {
			store := NewBagStore(storebind.Props{"watched": 0})
			provider, _ := storebind.NewProvider(store)
			host := testutil.NewRecordingHost()
			if _, err := MountFan(host, provider.Mount(), "watched", width); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				store.Dispatch(storebind.Props{"watched": i})
				host.Flush()
			}
		})
	}
}

// BenchmarkSelectorHit measures a memoized derivation with unchanged inputs.
func BenchmarkSelectorHit(b *testing.B) {
	factory := FieldSelector("watched")
	sel, err := factory(func(action any) any { return action }, nil)
	if err != nil {
		b.Fatal(err)
	}
	state := storebind.Props{"watched": 1}
	own := storebind.Props{}
	if _, err := sel(state, own); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sel(state, own); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBatchedUpdates measures n dispatches coalesced into one
// notification round versus n rounds.
func BenchmarkBatchedUpdates(b *testing.B) {
	store := NewBagStore(storebind.Props{"watched": 0})
	provider, _ := storebind.NewProvider(store)
	host := testutil.NewRecordingHost()
	if _, err := MountFan(host, provider.Mount(), "watched", 10); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storebind.Batch(store, func() {
			for j := 0; j < 10; j++ {
				store.Dispatch(storebind.Props{"watched": i*10 + j})
			}
		})
		host.Flush()
	}
}
