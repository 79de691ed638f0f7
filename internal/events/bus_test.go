package events

import "testing"

func TestPublishOrder(t *testing.T) {
	b := NewBus()
	var got []int
	b.Subscribe(DoorHit, func() { got = append(got, 1) })
	b.Subscribe(DoorHit, func() { got = append(got, 2) })
	b.Subscribe(CountdownOver, func() { got = append(got, 99) })

	if n := b.Publish(DoorHit); n != 2 {
		t.Errorf("Publish() = %d, expected 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("dispatch order = %v, expected [1 2]", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	off := b.Subscribe(CountdownOver, func() { calls++ })
	keep := b.Subscribe(CountdownOver, func() {})

	off()
	off()
	if b.HandlerCount(CountdownOver) != 1 {
		t.Errorf("HandlerCount() = %d, expected 1", b.HandlerCount(CountdownOver))
	}

	b.Publish(CountdownOver)
	if calls != 0 {
		t.Errorf("removed handler ran %d times", calls)
	}

	keep()
	if b.HandlerCount(CountdownOver) != 0 {
		t.Errorf("HandlerCount() = %d, expected 0", b.HandlerCount(CountdownOver))
	}
	if n := b.Publish(CountdownOver); n != 0 {
		t.Errorf("Publish() with no handlers = %d", n)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	var second int
	var off func()
	b.Subscribe(DoorHit, func() { off() })
	off = b.Subscribe(DoorHit, func() { second++ })

	// The snapshot taken at publish time still runs the second handler once
	b.Publish(DoorHit)
	b.Publish(DoorHit)
	if second != 1 {
		t.Errorf("second handler ran %d times, expected 1", second)
	}
}

func TestSignalString(t *testing.T) {
	if CountdownOver.String() != "CountdownOver" || DoorHit.String() != "DoorHit" {
		t.Error("signal names wrong")
	}
}
