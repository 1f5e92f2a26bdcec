package core

import "testing"

func TestListenerCollection_NotifyInRegistrationOrder(t *testing.T) {
	var c listenerCollection
	var got []int
	for i := 0; i < 4; i++ {
		i := i
		c.subscribe(func() { got = append(got, i) })
	}

	c.notify()

	want := []int{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("notified %d listeners, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d notified %d, want %d", i, got[i], want[i])
		}
	}
}

func TestListenerCollection_UnsubscribeIdempotent(t *testing.T) {
	var c listenerCollection
	calls := 0
	unsub := c.subscribe(func() { calls++ })

	unsub()
	unsub() // second call must be a no-op

	c.notify()
	if calls != 0 {
		t.Errorf("unsubscribed listener invoked %d times, want 0", calls)
	}
}

func TestListenerCollection_ReentrantSelfUnsubscribe(t *testing.T) {
	var c listenerCollection
	var got []string

	var unsubB func()
	c.subscribe(func() { got = append(got, "a") })
	unsubB = c.subscribe(func() {
		got = append(got, "b")
		unsubB()
	})
	c.subscribe(func() { got = append(got, "c") })

	c.notify()
	c.notify()

	want := []string{"a", "b", "c", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestListenerCollection_UnsubscribeLaterListenerMidRound(t *testing.T) {
	var c listenerCollection
	var got []string

	var unsubC func()
	c.subscribe(func() {
		got = append(got, "a")
		unsubC()
	})
	c.subscribe(func() { got = append(got, "b") })
	unsubC = c.subscribe(func() { got = append(got, "c") })

	c.notify()

	// c was removed before being visited; b must still run exactly once.
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestListenerCollection_StaleUnsubscribeAfterClear(t *testing.T) {
	var c listenerCollection
	var got []string

	unsubA := c.subscribe(func() { got = append(got, "a") })
	c.subscribe(func() { got = append(got, "b") })

	c.clear()
	c.subscribe(func() { got = append(got, "c") })
	unsubA() // predates the clear; must not disturb the rebuilt list

	c.notify()
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("got %v, want [c]", got)
	}
}

func TestListenerCollection_ClearDropsAll(t *testing.T) {
	var c listenerCollection
	calls := 0
	unsub := c.subscribe(func() { calls++ })

	c.clear()
	c.notify()
	if calls != 0 {
		t.Errorf("cleared listener invoked %d times, want 0", calls)
	}
	unsub() // must stay safe after clear
}
