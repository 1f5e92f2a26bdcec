// Command demo runs a small counter app against the binding layer: a
// connected component on a tick-driven host, with lifecycle events published
// to a channel, snapshots registered and persisted as JSON, and the
// notification tree printed as Graphviz DOT on shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/storebind"
	"github.com/comalice/storebind/internal/production"
	"github.com/comalice/storebind/loop"
	"github.com/comalice/storebind/testutil"
)

func main() {
	flag.Parse()

	store := testutil.NewStore(func(state, action any) any {
		if action == "inc" {
			return state.(int) + 1
		}
		return state
	}, 0)

	provider, err := storebind.NewProvider(store)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	events := make(chan storebind.BindingEvent, 100)
	publisher := production.NewChannelPublisher(events)
	go func() {
		for e := range events {
			fmt.Printf("event: %-10s %s\n", e.Kind, e.DisplayName)
		}
	}()

	conn, err := storebind.Connect(
		storebind.NewSelectorFactory(func(state, own any) storebind.Props {
			return storebind.Props{"count": state}
		}, nil, nil),
		storebind.WithPublisher(publisher),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host := loop.New(loop.Config{TickRate: 100 * time.Millisecond})
	probe := testutil.NewProbe("Counter", nil)
	wrapped, err := conn.Wrap(probe)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	inst, err := wrapped.NewInstance(host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host.Start(context.Background())
	defer host.Stop()

	host.Do(func() {
		if _, err := inst.Render(storebind.Props{}, provider.Mount()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		inst.Commit()
	})

	registry := production.NewMemoryRegistry()
	persister, err := production.NewJSONPersister(os.TempDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	go func() {
		for {
			time.Sleep(500 * time.Millisecond)
			if err := host.Dispatch(store, "inc"); err != nil {
				fmt.Fprintln(os.Stderr, "dispatch:", err)
				continue
			}
			host.Do(func() {
				snap := production.CaptureSnapshot(inst.Coordinator())
				ctx := context.Background()
				if err := registry.Register(ctx, snap); err != nil {
					fmt.Fprintln(os.Stderr, "register:", err)
					return
				}
				if err := persister.Save(ctx, snap); err != nil {
					fmt.Fprintln(os.Stderr, "persist:", err)
				}
			})
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	done := make(chan struct{})
	host.Do(func() {
		v := &production.TreeVisualizer{}
		fmt.Println(v.ExportDOT(provider.Subscription()))
		versions, err := registry.ListVersions(context.Background(), inst.ID())
		if err == nil {
			fmt.Printf("captured %d snapshots of %s\n", len(versions), inst.DisplayName())
		}
		close(done)
	})
	<-done
}
