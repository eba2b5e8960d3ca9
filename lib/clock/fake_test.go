// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNow(t *testing.T) {
	fake := Fake(testEpoch)
	if got := fake.Now(); !got.Equal(testEpoch) {
		t.Errorf("Now() = %v, want %v", got, testEpoch)
	}

	fake.Advance(90 * time.Second)
	want := testEpoch.Add(90 * time.Second)
	if got := fake.Now(); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeAfter(t *testing.T) {
	t.Run("fires on advance", func(t *testing.T) {
		fake := Fake(testEpoch)
		ch := fake.After(10 * time.Second)

		select {
		case <-ch:
			t.Fatal("After channel fired before Advance")
		default:
		}

		fake.Advance(10 * time.Second)
		select {
		case fired := <-ch:
			if !fired.Equal(testEpoch.Add(10 * time.Second)) {
				t.Errorf("fire time = %v, want %v", fired, testEpoch.Add(10*time.Second))
			}
		default:
			t.Fatal("After channel did not fire after Advance")
		}
	})

	t.Run("non-positive fires immediately", func(t *testing.T) {
		fake := Fake(testEpoch)
		select {
		case <-fake.After(0):
		default:
			t.Fatal("After(0) did not fire immediately")
		}
	})
}

func TestFakeAfterFunc(t *testing.T) {
	t.Run("deadline order", func(t *testing.T) {
		fake := Fake(testEpoch)
		var order []int
		fake.AfterFunc(3*time.Second, func() { order = append(order, 3) })
		fake.AfterFunc(1*time.Second, func() { order = append(order, 1) })
		fake.AfterFunc(2*time.Second, func() { order = append(order, 2) })

		fake.Advance(5 * time.Second)
		if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
			t.Errorf("callback order = %v, want [1 2 3]", order)
		}
	})

	t.Run("stop prevents firing", func(t *testing.T) {
		fake := Fake(testEpoch)
		fired := false
		timer := fake.AfterFunc(time.Second, func() { fired = true })
		if !timer.Stop() {
			t.Error("Stop() = false, want true for pending timer")
		}
		fake.Advance(2 * time.Second)
		if fired {
			t.Error("stopped timer fired")
		}
		if timer.Stop() {
			t.Error("Stop() = true on already-stopped timer")
		}
	})

	t.Run("reset after firing re-arms", func(t *testing.T) {
		fake := Fake(testEpoch)
		count := 0
		timer := fake.AfterFunc(time.Second, func() { count++ })
		fake.Advance(time.Second)
		if count != 1 {
			t.Fatalf("count = %d, want 1", count)
		}
		if timer.Reset(time.Second) {
			t.Error("Reset() = true on fired timer, want false")
		}
		fake.Advance(time.Second)
		if count != 2 {
			t.Errorf("count after re-arm = %d, want 2", count)
		}
	})
}

func TestFakeTicker(t *testing.T) {
	fake := Fake(testEpoch)
	ticker := fake.NewTicker(time.Second)
	defer ticker.Stop()

	fake.Advance(time.Second)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker did not fire after one interval")
	}

	// An advance spanning several intervals delivers at most one tick
	// per interval, dropping overflow (capacity-1 channel).
	fake.Advance(3 * time.Second)
	ticks := 0
	for {
		select {
		case <-ticker.C:
			ticks++
			continue
		default:
		}
		break
	}
	if ticks != 1 {
		t.Errorf("buffered ticks = %d, want 1 (overflow dropped)", ticks)
	}

	ticker.Stop()
	fake.Advance(5 * time.Second)
	select {
	case <-ticker.C:
		t.Error("stopped ticker fired")
	default:
	}
}

func TestWaitForTimers(t *testing.T) {
	fake := Fake(testEpoch)
	registered := make(chan struct{})
	fired := make(chan struct{})

	go func() {
		ch := fake.After(time.Minute)
		close(registered)
		<-ch
		close(fired)
	}()

	<-registered
	fake.WaitForTimers(1)
	if got := fake.PendingCount(); got != 1 {
		t.Errorf("PendingCount() = %d, want 1", got)
	}

	fake.Advance(time.Minute)
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for goroutine to observe the fire")
	}
}
