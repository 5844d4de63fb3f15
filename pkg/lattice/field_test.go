package lattice_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/chazu/inflate/pkg/lattice"
)

func TestFieldAccess(t *testing.T) {
	f := lattice.NewField(3, 2)
	f.Set(2, 1, 7)
	if got := f.At(2, 1); got != 7 {
		t.Errorf("At = %g", got)
	}
	if got := f.AtOrZero(3, 1); got != 0 {
		t.Errorf("AtOrZero off lattice = %g", got)
	}
	if got := f.AtOrZero(-1, 0); got != 0 {
		t.Errorf("AtOrZero off lattice = %g", got)
	}
	if f.Max() != 7 {
		t.Errorf("Max = %g", f.Max())
	}
	c := lattice.NewField(3, 2)
	c.Set(0, 0, 9)
	f.Swap(c)
	if f.At(0, 0) != 9 || c.At(0, 0) != 0 || c.At(2, 1) != 7 {
		t.Error("Swap did not exchange contents")
	}
}

func TestMaskPoints(t *testing.T) {
	m := lattice.NewMask(4, 3)
	m.Set(2, 1, true)
	m.Set(0, 2, true)
	if m.Count() != 2 {
		t.Fatalf("Count = %d", m.Count())
	}
	pts := m.Points()
	want := []lattice.Cell{{Col: 0, Row: 2}, {Col: 2, Row: 1}}
	if len(pts) != len(want) {
		t.Fatalf("Points = %v", pts)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
	if m.Inside(-1, 0) || m.Inside(4, 0) {
		t.Error("Inside is true off the lattice")
	}
}

func TestForEachColumn(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		var n atomic.Int64
		err := lattice.ForEachColumn(context.Background(), 100, workers, func(col int) error {
			n.Add(int64(col))
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if n.Load() != 4950 {
			t.Errorf("workers=%d: sum = %d", workers, n.Load())
		}
	}
}

func TestForEachColumnError(t *testing.T) {
	boom := errors.New("boom")
	for _, workers := range []int{1, 3} {
		err := lattice.ForEachColumn(context.Background(), 10, workers, func(col int) error {
			if col == 4 {
				return boom
			}
			return nil
		})
		if !errors.Is(err, boom) {
			t.Errorf("workers=%d: err = %v", workers, err)
		}
	}
}

func TestForEachColumnCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := lattice.ForEachColumn(ctx, 10, 1, func(int) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
