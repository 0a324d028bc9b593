package locations

import (
	"testing"

	"github.com/erazemk/shramba/internal/model"
)

func ptr(id int64) *int64 { return &id }

func loc(id int64, name string, parent *int64) model.Location {
	return model.Location{ID: id, Name: name, ParentID: parent}
}

func countNodes(forest []*Node, seen map[int64]int) {
	for _, n := range forest {
		seen[n.ID]++
		countNodes(n.Children, seen)
	}
}

func TestBuildHierarchy(t *testing.T) {
	locs := []model.Location{
		loc(1, "Home", nil),
		loc(2, "Kitchen", ptr(1)),
		loc(3, "Fridge", ptr(2)),
		loc(4, "Bedroom", ptr(1)),
		loc(5, "Garage", nil),
	}

	forest := BuildHierarchy(locs)
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	if forest[0].ID != 1 || forest[1].ID != 5 {
		t.Errorf("unexpected root order: %d, %d", forest[0].ID, forest[1].ID)
	}

	home := forest[0]
	if len(home.Children) != 2 {
		t.Fatalf("expected 2 children of Home, got %d", len(home.Children))
	}
	if home.Children[0].ID != 2 || home.Children[1].ID != 4 {
		t.Errorf("unexpected children order: %d, %d", home.Children[0].ID, home.Children[1].ID)
	}
	if len(home.Children[0].Children) != 1 || home.Children[0].Children[0].ID != 3 {
		t.Errorf("expected Fridge under Kitchen")
	}
}

func TestBuildHierarchyEveryNodeOnce(t *testing.T) {
	locs := []model.Location{
		loc(1, "A", nil),
		loc(2, "B", ptr(1)),
		loc(3, "C", ptr(99)), // dangling parent
		loc(4, "D", ptr(3)),
		loc(5, "E", ptr(6)), // cycle 5 <-> 6
		loc(6, "F", ptr(5)),
		loc(7, "G", ptr(7)), // self parent
	}

	forest := BuildHierarchy(locs)

	seen := make(map[int64]int)
	countNodes(forest, seen)
	for _, l := range locs {
		if seen[l.ID] != 1 {
			t.Errorf("location %d appears %d times, want 1", l.ID, seen[l.ID])
		}
	}
	if len(seen) != len(locs) {
		t.Errorf("expected %d nodes, got %d", len(locs), len(seen))
	}
}

func TestBuildHierarchyDanglingParentBecomesRoot(t *testing.T) {
	forest := BuildHierarchy([]model.Location{loc(3, "Orphan", ptr(42))})
	if len(forest) != 1 || forest[0].ID != 3 {
		t.Fatalf("expected orphan as the only root, got %+v", forest)
	}
}

func TestBuildHierarchyChildrenMatchParentID(t *testing.T) {
	locs := []model.Location{
		loc(1, "A", nil),
		loc(2, "B", ptr(1)),
		loc(3, "C", ptr(1)),
		loc(4, "D", ptr(2)),
	}

	var check func(nodes []*Node)
	check = func(nodes []*Node) {
		for _, n := range nodes {
			want := 0
			for _, l := range locs {
				if l.ParentID != nil && *l.ParentID == n.ID {
					want++
				}
			}
			if len(n.Children) != want {
				t.Errorf("node %d has %d children, want %d", n.ID, len(n.Children), want)
			}
			for _, c := range n.Children {
				if c.ParentID == nil || *c.ParentID != n.ID {
					t.Errorf("child %d listed under %d", c.ID, n.ID)
				}
			}
			check(n.Children)
		}
	}
	check(BuildHierarchy(locs))
}

func TestBuildHierarchyEmpty(t *testing.T) {
	forest := BuildHierarchy(nil)
	if forest == nil || len(forest) != 0 {
		t.Errorf("expected empty non-nil forest, got %v", forest)
	}
}

func TestFlatten(t *testing.T) {
	locs := []model.Location{
		loc(1, "Home", nil),
		loc(2, "Kitchen", ptr(1)),
		loc(3, "Fridge", ptr(2)),
		loc(4, "Garage", nil),
	}

	flat := Flatten(BuildHierarchy(locs))
	wantIDs := []int64{1, 2, 3, 4}
	wantDepth := []int{0, 1, 2, 0}
	if len(flat) != len(wantIDs) {
		t.Fatalf("expected %d entries, got %d", len(wantIDs), len(flat))
	}
	for i := range flat {
		if flat[i].ID != wantIDs[i] || flat[i].Depth != wantDepth[i] {
			t.Errorf("entry %d = (%d, depth %d), want (%d, depth %d)",
				i, flat[i].ID, flat[i].Depth, wantIDs[i], wantDepth[i])
		}
	}
}

func TestComputePath(t *testing.T) {
	kitchen := model.Location{ID: 1, Name: "Kitchen", Path: "Kitchen"}

	if got := ComputePath("Kitchen", nil); got != "Kitchen" {
		t.Errorf("root path = %q, want %q", got, "Kitchen")
	}
	if got := ComputePath("Fridge", &kitchen); got != "Kitchen/Fridge" {
		t.Errorf("child path = %q, want %q", got, "Kitchen/Fridge")
	}
}

func TestIsDescendant(t *testing.T) {
	locs := []model.Location{
		loc(1, "A", nil),
		loc(2, "B", ptr(1)),
		loc(3, "C", ptr(2)),
		loc(4, "D", nil),
	}

	tests := []struct {
		ancestor, candidate int64
		want                bool
	}{
		{1, 1, true},
		{1, 2, true},
		{1, 3, true},
		{2, 3, true},
		{3, 1, false},
		{1, 4, false},
	}
	for _, tt := range tests {
		if got := IsDescendant(locs, tt.ancestor, tt.candidate); got != tt.want {
			t.Errorf("IsDescendant(%d, %d) = %v, want %v", tt.ancestor, tt.candidate, got, tt.want)
		}
	}
}

func TestRepath(t *testing.T) {
	locs := []model.Location{
		{ID: 1, Name: "House", Path: "House"},
		{ID: 2, Name: "Kitchen", ParentID: ptr(1), Path: "Home/Kitchen"},
		{ID: 3, Name: "Fridge", ParentID: ptr(2), Path: "Home/Kitchen/Fridge"},
		{ID: 4, Name: "Garage", Path: "Garage"},
	}

	changed := Repath(locs, locs[0])
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed locations, got %d", len(changed))
	}
	want := map[int64]string{2: "House/Kitchen", 3: "House/Kitchen/Fridge"}
	for _, c := range changed {
		if c.Path != want[c.ID] {
			t.Errorf("location %d path = %q, want %q", c.ID, c.Path, want[c.ID])
		}
	}
}
