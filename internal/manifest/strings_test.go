package manifest

import (
	"errors"
	"testing"
)

func scanIndex(t *testing.T, data []byte) *index {
	t.Helper()
	ix := &index{}
	rest := data[EnvelopeLen:]
	for len(rest) > 0 {
		consumed, err := identifyDescriptor(ix, rest)
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		rest = rest[consumed:]
	}
	return ix
}

func TestResolveStringZeroIsAbsent(t *testing.T) {
	ix := scanIndex(t, NewBuilder().String(1, "present").Bytes())

	value, ok, err := resolveString(ix, 0)
	if err != nil || ok || value != "" {
		t.Fatalf("id 0 must be absent without error: %q %v %v", value, ok, err)
	}
	if got := ix.countType(TypeString); got != 1 {
		t.Fatalf("id 0 must not consume anything, %d strings left", got)
	}
}

func TestResolveStringConsumesDescriptor(t *testing.T) {
	ix := scanIndex(t, NewBuilder().String(3, "once").Bytes())

	value, ok, err := resolveString(ix, 3)
	if err != nil || !ok || value != "once" {
		t.Fatalf("first resolve: %q %v %v", value, ok, err)
	}

	if _, _, err := resolveString(ix, 3); !errors.Is(err, ErrStringNotFound) {
		t.Fatalf("second resolve must fail with ErrStringNotFound, got %v", err)
	}
}

func TestResolveStringUnknownID(t *testing.T) {
	ix := scanIndex(t, NewBuilder().String(1, "x").Bytes())
	if _, _, err := resolveString(ix, 2); !errors.Is(err, ErrStringNotFound) {
		t.Fatalf("expected ErrStringNotFound, got %v", err)
	}
}

func TestResolveStringCopiesOutOfBuffer(t *testing.T) {
	data := NewBuilder().String(1, "stable").Bytes()
	ix := scanIndex(t, data)

	value, _, err := resolveString(ix, 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for i := range data {
		data[i] = 0xff
	}
	if value != "stable" {
		t.Fatalf("resolved string must not alias the manifest buffer: %q", value)
	}
}
