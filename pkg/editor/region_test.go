package editor

import "testing"

func TestRegion(t *testing.T) {
	t.Parallel()

	t.Run("NewRegion normalizes reversed bounds", func(t *testing.T) {
		t.Parallel()

		r := NewRegion(7, 3)
		if r.Start != 3 || r.End != 7 {
			t.Errorf("NewRegion(7, 3) = %v, want [3, 7)", r)
		}
	})

	t.Run("Len and IsEmpty", func(t *testing.T) {
		t.Parallel()

		if got := (Region{Start: 2, End: 5}).Len(); got != 3 {
			t.Errorf("Len = %d, want 3", got)
		}
		if !(Region{Start: 4, End: 4}).IsEmpty() {
			t.Error("empty region not reported empty")
		}
		if (Region{Start: 0, End: 1}).IsEmpty() {
			t.Error("non-empty region reported empty")
		}
	})

	t.Run("Contains is half-open", func(t *testing.T) {
		t.Parallel()

		r := Region{Start: 2, End: 5}
		if !r.Contains(2) || !r.Contains(4) {
			t.Error("Contains should include start and interior")
		}
		if r.Contains(5) {
			t.Error("Contains should exclude end")
		}
		if (Region{Start: 3, End: 3}).Contains(3) {
			t.Error("empty region should contain nothing")
		}
	})

	t.Run("ContainsStrict excludes both endpoints", func(t *testing.T) {
		t.Parallel()

		r := Region{Start: 2, End: 5}
		if r.ContainsStrict(2) || r.ContainsStrict(5) {
			t.Error("ContainsStrict should exclude endpoints")
		}
		if !r.ContainsStrict(3) {
			t.Error("ContainsStrict should include interior")
		}
	})

	t.Run("ContainsRegion", func(t *testing.T) {
		t.Parallel()

		outer := Region{Start: 0, End: 10}
		if !outer.ContainsRegion(Region{Start: 0, End: 10}) {
			t.Error("region should contain itself")
		}
		if !outer.ContainsRegion(Region{Start: 3, End: 7}) {
			t.Error("region should contain inner region")
		}
		if outer.ContainsRegion(Region{Start: 5, End: 11}) {
			t.Error("region should not contain overflowing region")
		}
	})

	t.Run("Clamp", func(t *testing.T) {
		t.Parallel()

		got := Region{Start: -2, End: 99}.Clamp(10)
		if got != (Region{Start: 0, End: 10}) {
			t.Errorf("Clamp = %v, want [0, 10)", got)
		}
		got = Region{Start: 15, End: 20}.Clamp(10)
		if got != (Region{Start: 10, End: 10}) {
			t.Errorf("Clamp past end = %v, want [10, 10)", got)
		}
	})
}
