package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/cheflink/backoffice/internal/model"
)

// --- Mock resource ---

type mockResource[T any] struct {
	items   []T
	listErr error
	wrote   []string
}

func (m *mockResource[T]) List(_ context.Context) ([]T, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *mockResource[T]) Create(_ context.Context, draft any) error {
	m.wrote = append(m.wrote, "create")
	return nil
}

func (m *mockResource[T]) Update(_ context.Context, id int, draft any) error {
	m.wrote = append(m.wrote, "update")
	return nil
}

func (m *mockResource[T]) Delete(_ context.Context, id int) error {
	m.wrote = append(m.wrote, "delete")
	return nil
}

func categoryResource(names ...string) *mockResource[model.Category] {
	res := &mockResource[model.Category]{}
	for i, name := range names {
		res.items = append(res.items, model.Category{ID: i + 1, Name: name})
	}
	return res
}

// --- Refresh / List ---

func TestRefreshPopulatesSnapshot(t *testing.T) {
	scr := NewCategories(categoryResource("Drinks", "Desserts"))

	if err := scr.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := len(scr.Snapshot()); got != 2 {
		t.Errorf("snapshot: got %d items, want 2", got)
	}
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	res := categoryResource("Drinks", "Desserts")
	scr := NewCategories(res)

	if err := scr.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	res.listErr = errors.New("service down")
	items, err := scr.List(context.Background(), "")
	if err == nil {
		t.Fatal("expected error from failed refresh")
	}
	if len(items) != 2 {
		t.Errorf("stale items: got %d, want 2", len(items))
	}
	if got := len(scr.Snapshot()); got != 2 {
		t.Errorf("snapshot after failed refresh: got %d, want 2", got)
	}
}

func TestListFiltersCaseInsensitively(t *testing.T) {
	scr := NewCategories(categoryResource("Drinks", "Desserts", "Mains"))

	items, err := scr.List(context.Background(), "dRiNk")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Drinks" {
		t.Errorf("filtered: got %+v", items)
	}
}

func TestCustomerSearchFields(t *testing.T) {
	res := &mockResource[model.Customer]{items: []model.Customer{
		{ID: 1, Name: "Jane", Lastname: "Doe", Email: "jane@example.com", Phone: "555-0101"},
		{ID: 2, Name: "John", Lastname: "Smith", Email: "john@example.com", Phone: "555-0202"},
	}}
	scr := NewCustomers(res)

	cases := map[string][]int{
		"doe":     {1},
		"SMITH":   {2},
		"example": {1, 2},
		"0202":    {2},
	}

	for q, wantIDs := range cases {
		items, err := scr.List(context.Background(), q)
		if err != nil {
			t.Fatalf("list %q: %v", q, err)
		}
		ids := make([]int, len(items))
		for i, c := range items {
			ids[i] = c.ID
		}
		if len(ids) != len(wantIDs) {
			t.Errorf("query %q: got ids %v, want %v", q, ids, wantIDs)
			continue
		}
		for i := range ids {
			if ids[i] != wantIDs[i] {
				t.Errorf("query %q: got ids %v, want %v", q, ids, wantIDs)
				break
			}
		}
	}
}

// --- Duplicate-name validation ---

func TestCreateRejectsDuplicateNameAnyCase(t *testing.T) {
	res := categoryResource("Drinks")
	scr := NewCategories(res)
	scr.Refresh(context.Background())

	err := scr.Create(context.Background(), model.CategoryDraft{Name: "drinks"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
	if len(res.wrote) != 0 {
		t.Errorf("upstream write happened despite rejection: %v", res.wrote)
	}
}

func TestUpdateExcludesSelfFromDuplicateCheck(t *testing.T) {
	res := categoryResource("Drinks", "Desserts")
	scr := NewCategories(res)
	scr.Refresh(context.Background())

	// Re-saving "Drinks" on the record that owns it is allowed.
	if err := scr.Update(context.Background(), 1, model.CategoryDraft{Name: "Drinks"}); err != nil {
		t.Fatalf("update self: %v", err)
	}

	// Renaming "Desserts" to "drinks" collides with record 1.
	err := scr.Update(context.Background(), 2, model.CategoryDraft{Name: "drinks"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestScreensWithoutNameRuleSkipCheck(t *testing.T) {
	res := &mockResource[model.Hall]{items: []model.Hall{{ID: 1, Name: "Main Room", Capacity: 20}}}
	scr := NewHalls(res)
	scr.Refresh(context.Background())

	if err := scr.Create(context.Background(), model.HallDraft{Name: "main room", Capacity: 10}); err != nil {
		t.Fatalf("halls have no duplicate-name rule: %v", err)
	}
}

func TestWritesRefetchAuthoritativeList(t *testing.T) {
	res := categoryResource("Drinks")
	scr := NewCategories(res)
	scr.Refresh(context.Background())

	res.items = append(res.items, model.Category{ID: 2, Name: "Desserts"})
	if err := scr.Create(context.Background(), model.CategoryDraft{Name: "Desserts2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The snapshot reflects the re-fetched upstream state, not a local patch.
	if got := len(scr.Snapshot()); got != 2 {
		t.Errorf("snapshot: got %d, want 2", got)
	}
}
