package listing

import "testing"

func TestSortStateClick(t *testing.T) {
	t.Run("same key flips direction", func(t *testing.T) {
		s := SortState{Key: "name", Direction: Ascending}
		s = s.Click("name")
		if s.Key != "name" || s.Direction != Descending {
			t.Errorf("got %+v, want name/descending", s)
		}
	})

	t.Run("double click returns to original direction", func(t *testing.T) {
		s := SortState{Key: "name", Direction: Ascending}
		s = s.Click("name").Click("name")
		if s.Key != "name" || s.Direction != Ascending {
			t.Errorf("got %+v, want name/ascending", s)
		}
	})

	t.Run("new key resets to ascending", func(t *testing.T) {
		s := SortState{Key: "name", Direction: Descending}
		s = s.Click("email")
		if s.Key != "email" || s.Direction != Ascending {
			t.Errorf("got %+v, want email/ascending", s)
		}
	})

	t.Run("new key resets even from descending start", func(t *testing.T) {
		s := DefaultClientSort() // createdAt descending
		s = s.Click("createdAt")
		if s.Direction != Ascending {
			t.Errorf("clicking the default key while descending should yield ascending, got %v", s.Direction)
		}
	})

	t.Run("two different keys always end ascending", func(t *testing.T) {
		s := SortState{Key: "name", Direction: Ascending}
		s = s.Click("name") // descending
		s = s.Click("email")
		if s.Direction != Ascending {
			t.Errorf("got %v, want ascending", s.Direction)
		}
	})
}
