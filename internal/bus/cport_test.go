package bus

import (
	"errors"
	"testing"
)

func TestCPortMapSequentialAllocation(t *testing.T) {
	m := newCPortMap(DefaultCPortMax)
	for want := uint16(0); want < 10; want++ {
		id, err := m.allocate()
		if err != nil {
			t.Fatalf("allocate %d: %v", want, err)
		}
		if id != want {
			t.Fatalf("expected lowest free id %d, got %d", want, id)
		}
	}
	if m.used() != 10 {
		t.Fatalf("expected 10 used, got %d", m.used())
	}
}

func TestCPortMapReusesFreedID(t *testing.T) {
	m := newCPortMap(DefaultCPortMax)
	for i := 0; i < 5; i++ {
		if _, err := m.allocate(); err != nil {
			t.Fatalf("allocate: %v", err)
		}
	}
	if !m.free(2) {
		t.Fatalf("free(2) must succeed")
	}
	id, err := m.allocate()
	if err != nil {
		t.Fatalf("allocate after free: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected freed id 2 back, got %d", id)
	}
}

func TestCPortMapExhaustion(t *testing.T) {
	m := newCPortMap(3)
	for i := 0; i < 3; i++ {
		if _, err := m.allocate(); err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
	}
	if _, err := m.allocate(); !errors.Is(err, ErrCPortExhausted) {
		t.Fatalf("expected ErrCPortExhausted, got %v", err)
	}
}

func TestCPortMapDoubleFreeIsNoop(t *testing.T) {
	m := newCPortMap(8)
	id, _ := m.allocate()
	if !m.free(id) {
		t.Fatalf("first free must succeed")
	}
	if m.free(id) {
		t.Fatalf("double free must report false")
	}
	if m.free(200) {
		t.Fatalf("free out of range must report false")
	}
	if m.used() != 0 {
		t.Fatalf("expected empty map, %d used", m.used())
	}
}

func TestCPortMapCrossesWordBoundary(t *testing.T) {
	m := newCPortMap(70)
	var last uint16
	for i := 0; i < 70; i++ {
		id, err := m.allocate()
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		last = id
	}
	if last != 69 {
		t.Fatalf("expected final id 69, got %d", last)
	}
	if _, err := m.allocate(); !errors.Is(err, ErrCPortExhausted) {
		t.Fatalf("expected exhaustion at 70, got %v", err)
	}
}
