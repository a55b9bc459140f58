package hooks

import (
	"math"
	"testing"
)

func TestSame(t *testing.T) {
	tok := NewToken()
	s := []int{1, 2}
	m := map[string]int{"a": 1}
	type point struct{ X, Y int }
	p := &point{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 1, false},
		{"equal ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs int64", 1, int64(1), false},
		{"equal strings", "a", "a", true},
		{"equal structs", point{1, 2}, point{1, 2}, true},
		{"same pointer", p, p, true},
		{"equal pointees", &point{1, 2}, &point{1, 2}, false},
		{"same slice", s, s, true},
		{"equal slice contents", []int{1, 2}, []int{1, 2}, false},
		{"same map", m, m, true},
		{"equal map contents", map[string]int{"a": 1}, map[string]int{"a": 1}, false},
		{"same token", tok, tok, true},
		{"different tokens", NewToken(), NewToken(), false},
		{"funcs", func() {}, func() {}, false},
		{"NaN NaN", math.NaN(), math.NaN(), true},
		{"NaN float32", float32(math.NaN()), float32(math.NaN()), true},
		{"NaN number", math.NaN(), 1.0, false},
		{"equal floats", 1.5, 1.5, true},
		{"NaN complex", complex(math.NaN(), 1), complex(math.NaN(), 1), true},
		{"NaN complex imag differs", complex(math.NaN(), 0), complex(math.NaN(), 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSameFuncValueNeverEqualToItself(t *testing.T) {
	fn := func() {}
	if Same(fn, fn) {
		t.Error("a raw func has no identity and should never compare equal")
	}
}

func TestDepsEqual(t *testing.T) {
	if (Deps(nil)).Equal(nil) {
		t.Error("nil deps should never be equal")
	}
	if (Deps{}).Equal(nil) {
		t.Error("empty and nil deps should not be equal")
	}
	if !(Deps{}).Equal(Deps{}) {
		t.Error("empty deps should be equal")
	}
	if !(Deps{1, "a"}).Equal(Deps{1, "a"}) {
		t.Error("pairwise equal deps should be equal")
	}
	if (Deps{1, 2}).Equal(Deps{1, 3}) {
		t.Error("deps differing in one element should not be equal")
	}
	if (Deps{1}).Equal(Deps{1, 2}) {
		t.Error("deps of different length should not be equal")
	}
}

func TestDepsClone(t *testing.T) {
	if Deps(nil).Clone() != nil {
		t.Error("clone of nil should be nil")
	}

	d := Deps{1, 2}
	c := d.Clone()
	d[0] = 99
	if c[0] != 1 {
		t.Error("clone should not share backing array")
	}
}
