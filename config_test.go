package addrwait

import (
	"testing"
)

func TestRegistryConfig(t *testing.T) {
	cases := []struct {
		name    string
		options []func(*RegistryConfig)
		want    int
	}{
		{"default", nil, defaultCapacity},
		{"capacity", []func(*RegistryConfig){WithCapacity(16)}, 16},
		{"negative capacity", []func(*RegistryConfig){WithCapacity(-1)}, defaultCapacity},
		{"clamped by max", []func(*RegistryConfig){WithMaxSlots(8)}, 8},
		{"unbounded", []func(*RegistryConfig){WithCapacity(1024), WithMaxSlots(0)}, 1024},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRegistry(c.options...)
			if got := cap(r.slots); got != c.want {
				t.Fatalf("initial capacity = %d, want %d", got, c.want)
			}
		})
	}
}

func TestRegistryConfig_Panics(t *testing.T) {
	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s did not panic", name)
			}
		}()
		f()
	}
	mustPanic("WithMaxSlots(-1)", func() { WithMaxSlots(-1) })
	mustPanic("WithExhaustPolicy(7)", func() { WithExhaustPolicy(ExhaustPolicy(7)) })
}

func TestExhaustPolicy_String(t *testing.T) {
	if ExhaustFail.String() != "fail" || ExhaustWait.String() != "wait" {
		t.Fatal("unexpected policy names")
	}
	if ExhaustPolicy(5).String() != "ExhaustPolicy(5)" {
		t.Fatalf("got %q", ExhaustPolicy(5).String())
	}
}
