package geo

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/swinglab/swingcheck/pkg/core"
)

func TestMidpoint(t *testing.T) {
	m := Midpoint(core.Position2D{X: 100, Y: 200}, core.Position2D{X: 200, Y: 400})

	if m.X != 150 {
		t.Errorf("expected X=150, got %f", m.X)
	}
	if m.Y != 300 {
		t.Errorf("expected Y=300, got %f", m.Y)
	}
}

func TestMidpoint_NegativeCoordinates(t *testing.T) {
	m := Midpoint(core.Position2D{X: -10, Y: -20}, core.Position2D{X: 10, Y: 20})

	if m.X != 0 || m.Y != 0 {
		t.Errorf("expected origin, got %+v", m)
	}
}

func TestDistance(t *testing.T) {
	d := Distance(core.Position2D{X: 0, Y: 0}, core.Position2D{X: 3, Y: 4})

	if d != 5 {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestDistance_SamePoint(t *testing.T) {
	p := core.Position2D{X: 100, Y: 100}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDirection(t *testing.T) {
	dir, length, err := Direction(core.Position2D{X: 0, Y: 10}, core.Position2D{X: 0, Y: 0})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if length != 10 {
		t.Errorf("expected length=10, got %f", length)
	}
	if dir.X != 0 || dir.Y != -1 {
		t.Errorf("expected (0,-1), got %+v", dir)
	}
}

func TestDirection_IsUnitVector(t *testing.T) {
	dir, _, err := Direction(core.Position2D{X: 1, Y: 2}, core.Position2D{X: 4, Y: 6})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	norm := math.Hypot(dir.X, dir.Y)
	if math.Abs(norm-1) > 1e-12 {
		t.Errorf("expected unit vector, got norm %f", norm)
	}
}

func TestDirection_Degenerate(t *testing.T) {
	p := core.Position2D{X: 50, Y: 50}
	_, _, err := Direction(p, p)

	if !errors.Is(err, ErrZeroLength) {
		t.Fatalf("expected ErrZeroLength, got %v", err)
	}
}

func TestSpineLine(t *testing.T) {
	axis := core.SpineAxis{
		Anchor:    core.Position2D{X: 100, Y: 300},
		Direction: core.Position2D{X: 0, Y: -1},
		Length:    100,
	}

	ls, err := SpineLine(axis)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := ls.Coordinates()
	if seq.Length() != 2 {
		t.Fatalf("expected 2 points, got %d", seq.Length())
	}
	start := seq.GetXY(0)
	end := seq.GetXY(1)
	if start.X != 100 || start.Y != 300 {
		t.Errorf("expected start (100,300), got %+v", start)
	}
	if end.X != 100 || end.Y != 200 {
		t.Errorf("expected end (100,200), got %+v", end)
	}
}

func TestSpineLine_IsWellKnownText(t *testing.T) {
	axis := core.SpineAxis{
		Anchor:    core.Position2D{X: 100, Y: 300},
		Direction: core.Position2D{X: 0, Y: -1},
		Length:    120,
	}

	ls, err := SpineLine(axis)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wkt := ls.AsText()
	if !strings.HasPrefix(wkt, "LINESTRING") {
		t.Errorf("expected LINESTRING WKT, got %q", wkt)
	}
}

func TestSpineLine_DegenerateAxis(t *testing.T) {
	// Zero length collapses anchor and top to the same point, which is not
	// a valid linestring.
	axis := core.SpineAxis{
		Anchor:    core.Position2D{X: 100, Y: 300},
		Direction: core.Position2D{X: 0, Y: -1},
		Length:    0,
	}

	if _, err := SpineLine(axis); err == nil {
		t.Fatal("expected error for coincident endpoints")
	}
}

func TestPoint(t *testing.T) {
	pt, err := Point(core.Position2D{X: 12.5, Y: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords, ok := pt.Coordinates()
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if coords.X != 12.5 || coords.Y != 42 {
		t.Errorf("expected (12.5,42), got %+v", coords)
	}
}
