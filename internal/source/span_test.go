package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 5, End: 10}
	b := Span{File: 0, Start: 2, End: 7}

	got := a.Cover(b)
	if got.Start != 2 || got.End != 10 {
		t.Fatalf("Cover = %v", got)
	}

	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must be identity, got %v", got)
	}
}

func TestSpanEmptyLen(t *testing.T) {
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Errorf("expected empty span")
	}
	if (Span{Start: 3, End: 8}).Len() != 5 {
		t.Errorf("unexpected length")
	}
}
