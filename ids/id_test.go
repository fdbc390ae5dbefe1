package ids

import "testing"

func TestIDStringRoundTrip(t *testing.T) {
	var id ID
	for i := range id {
		id[i] = byte(i)
	}

	s := id.String()
	got, err := FromString(s)
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if got != id {
		t.Fatalf("got %x, want %x", got, id)
	}
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := FromBytes(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short byte slice")
	}
}

func TestSortIDs(t *testing.T) {
	a := ID{1}
	b := ID{2}
	c := ID{3}
	ids := []ID{c, a, b}
	SortIDs(ids)
	if !IDsAreSortedAndUnique(ids) {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
	if ids[0] != a || ids[1] != b || ids[2] != c {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestIDsAreSortedAndUniqueRejectsDuplicates(t *testing.T) {
	a := ID{1}
	if IDsAreSortedAndUnique([]ID{a, a}) {
		t.Fatalf("expected duplicate ids to fail the sorted+unique check")
	}
}
