package geom

import "testing"

func TestNewRectangleRoundsOutward(t *testing.T) {
	r := NewRectangle(1.2, 2.8, 9.1, 10.9)
	want := Rectangle{Top: 1, Left: 2, Bottom: 11, Right: 12}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestRectangleUnion(t *testing.T) {
	a := Rectangle{Top: 0, Left: 0, Bottom: 5, Right: 5}
	b := Rectangle{Top: -2, Left: 3, Bottom: 4, Right: 10}
	got := a.Union(b)
	want := Rectangle{Top: -2, Left: 0, Bottom: 5, Right: 10}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRectangleClamp(t *testing.T) {
	r := Rectangle{Top: -3, Left: -3, Bottom: 20, Right: 20}
	got := r.Clamp(10, 10)
	want := Rectangle{Top: 0, Left: 0, Bottom: 10, Right: 10}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRectangleEmpty(t *testing.T) {
	cases := []struct {
		r     Rectangle
		empty bool
	}{
		{Rectangle{Top: 0, Bottom: 5, Left: 0, Right: 5}, false},
		{Rectangle{Top: 5, Bottom: 5, Left: 0, Right: 5}, true},
		{Rectangle{Top: 0, Bottom: 5, Left: 0, Right: 0}, true},
	}
	for _, c := range cases {
		if got := c.r.Empty(); got != c.empty {
			t.Errorf("Empty(%+v) = %v, want %v", c.r, got, c.empty)
		}
	}
}
