package service

import (
	"context"
	"fmt"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
)

func TestCodeCenterSequentialCodes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCodeCenterService(repository.NewCodeCenterRepository(db), repository.NewTransactionManager(db))
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		center, err := svc.Create(ctx, CreateCodeCenterRequest{Name: fmt.Sprintf("Center %d", i)})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		want := fmt.Sprintf("CC%03d", i)
		if center.Code != want {
			t.Errorf("code %d = %q, want %q", i, center.Code, want)
		}
	}
}

func TestCodeCenterRestartsOnUnparseableCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCodeCenterService(repository.NewCodeCenterRepository(db), repository.NewTransactionManager(db))
	ctx := context.Background()

	// A legacy row whose suffix does not parse resets numbering to 1.
	if err := db.Create(&model.CodeCenter{Code: "CCxyz", Name: "legacy"}).Error; err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	center, err := svc.Create(ctx, CreateCodeCenterRequest{Name: "fresh"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if center.Code != "CC001" {
		t.Errorf("code = %q, want CC001", center.Code)
	}
}

func TestCodeCenterCodeImmutableOnUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCodeCenterService(repository.NewCodeCenterRepository(db), repository.NewTransactionManager(db))
	ctx := context.Background()

	center, err := svc.Create(ctx, CreateCodeCenterRequest{Name: "before"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, center.ID, UpdateCodeCenterRequest{Name: "after", Description: "renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Code != center.Code {
		t.Errorf("code changed on update: %q -> %q", center.Code, updated.Code)
	}
	if updated.Name != "after" {
		t.Errorf("name = %q, want after", updated.Name)
	}
}

func TestNextCode(t *testing.T) {
	tests := []struct {
		name string
		last *model.CodeCenter
		want string
	}{
		{"empty table", nil, "CC001"},
		{"increments", &model.CodeCenter{Code: "CC007"}, "CC008"},
		{"rolls past padding", &model.CodeCenter{Code: "CC999"}, "CC1000"},
		{"unparseable suffix", &model.CodeCenter{Code: "CCabc"}, "CC001"},
		{"prefix only", &model.CodeCenter{Code: "CC"}, "CC001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextCode(tt.last); got != tt.want {
				t.Errorf("nextCode(%v) = %q, want %q", tt.last, got, tt.want)
			}
		})
	}
}
