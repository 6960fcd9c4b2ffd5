package service

import (
	"context"
	"strings"
	"testing"

	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCategoryCreate_NormalizesName(t *testing.T) {
	svc := NewCategoryService(newMockCategoryRepository())
	ctx := context.Background()

	category, err := svc.Create(ctx, "  Snacks ")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if category.Name != "snacks" {
		t.Errorf("Expected stored name %q, got %q", "snacks", category.Name)
	}
	if category.ID == uuid.Nil {
		t.Error("Expected a generated id")
	}
}

func TestCategoryCreate_EmptyNameRejected(t *testing.T) {
	svc := NewCategoryService(newMockCategoryRepository())

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(context.Background(), name); err != ErrNameRequired {
			t.Errorf("Create(%q): expected ErrNameRequired, got %v", name, err)
		}
	}
}

func TestCategoryCreate_LongNameRejected(t *testing.T) {
	svc := NewCategoryService(newMockCategoryRepository())

	if _, err := svc.Create(context.Background(), strings.Repeat("a", 51)); err != ErrNameTooLong {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
	if _, err := svc.Create(context.Background(), strings.Repeat("a", 50)); err != nil {
		t.Errorf("50-char name should be accepted, got %v", err)
	}
}

// Names equal after trim+lowercase are the same category.
func TestProperty_CategoryUniquenessIsCaseAndTrimInsensitive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("creating a trim/case variant of an existing name conflicts", prop.ForAll(
		func(name string, upper bool, pad bool) bool {
			repo := newMockCategoryRepository()
			svc := NewCategoryService(repo)
			ctx := context.Background()

			if _, err := svc.Create(ctx, name); err != nil {
				return true // generator produced an invalid name, skip
			}

			variant := name
			if upper {
				variant = strings.ToUpper(variant)
			}
			if pad {
				variant = "  " + variant + " "
			}

			_, err := svc.Create(ctx, variant)
			return err == repository.ErrCategoryAlreadyExists
		},
		gen.RegexMatch(`[a-z]{1,20}( [a-z]{1,10})?`),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCategoryList_SortedByName(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "alpha", "Mango"} {
		if _, err := svc.Create(ctx, name); err != nil {
			t.Fatalf("Create(%q) failed: %v", name, err)
		}
	}

	categories, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"alpha", "mango", "zeta"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, categories[i].Name)
		}
	}
}

func TestCategoryUpdate_ReplacesName(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	category, err := svc.Create(ctx, "drinks")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, category.ID, " Beverages ")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Name != "beverages" {
		t.Errorf("Expected normalized name %q, got %q", "beverages", updated.Name)
	}
	if !updated.UpdatedAt.After(category.UpdatedAt) && !updated.UpdatedAt.Equal(category.UpdatedAt) {
		t.Error("UpdatedAt should move forward")
	}
}

func TestCategoryUpdate_MissingIDFails(t *testing.T) {
	svc := NewCategoryService(newMockCategoryRepository())

	_, err := svc.Update(context.Background(), uuid.New(), "anything")
	if err != repository.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryUpdate_DuplicateNameFails(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "snacks"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other, err := svc.Create(ctx, "drinks")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Update(ctx, other.ID, "SNACKS"); err != repository.ErrCategoryAlreadyExists {
		t.Errorf("Expected ErrCategoryAlreadyExists, got %v", err)
	}
}

func TestCategoryDelete_IsIdempotent(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	category, err := svc.Create(ctx, "snacks")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, category.ID); err != nil {
		t.Errorf("Second delete should succeed, got %v", err)
	}
	if err := svc.Delete(ctx, uuid.New()); err != nil {
		t.Errorf("Deleting an unknown id should succeed, got %v", err)
	}
}
