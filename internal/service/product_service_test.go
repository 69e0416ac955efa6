package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

func TestCreateProductWithGallery(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@test.com", "secret123")

	existing := model.ProductImage{Image: "product_images/old.png", Description: "stock shot"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed image: %v", err)
	}

	price := decimal.NewFromFloat(1500.50)
	product, err := svc.Create(ctx, &owner.ID, CreateProductRequest{
		Name:       "Clavier sans fil",
		Price:      &price,
		UserID:     &owner.ID,
		PictureIDs: []uint{existing.ID},
		NewPictures: []NewPictureInput{
			{Path: "product_images/new.png", Description: "fresh upload"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(product.Pictures) != 2 {
		t.Fatalf("gallery size = %d, want 2", len(product.Pictures))
	}
	if !product.Price.Equal(price) {
		t.Errorf("price = %s, want %s", product.Price, price)
	}
	if !product.Availability {
		t.Error("availability should default to true")
	}

	if n := countActions(t, db, model.ActionCreate, "Product"); n != 1 {
		t.Errorf("CREATE actions = %d, want exactly 1", n)
	}
}

func TestCreateProductRejectsUnknownPictureID(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, nil, CreateProductRequest{
		Name:       "Orphelin",
		PictureIDs: []uint{4242},
	})
	if err == nil {
		t.Fatal("expected unknown picture id to fail")
	}

	// The whole transaction rolls back: no product, no audit row.
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count != 0 {
		t.Errorf("products = %d, want 0 after rollback", count)
	}
	if n := countActions(t, db, model.ActionCreate, "Product"); n != 0 {
		t.Errorf("CREATE actions = %d, want 0 after rollback", n)
	}
}

func TestUpdateProductReplacesGallery(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	first := model.ProductImage{Image: "product_images/a.png"}
	second := model.ProductImage{Image: "product_images/b.png"}
	for _, img := range []*model.ProductImage{&first, &second} {
		if err := db.Create(img).Error; err != nil {
			t.Fatalf("seed image: %v", err)
		}
	}

	product, err := svc.Create(ctx, nil, CreateProductRequest{
		Name:       "Tablette",
		PictureIDs: []uint{first.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, nil, product.ID, UpdateProductRequest{
		Description: "reconditionnée",
		PictureIDs:  []uint{second.ID},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Pictures) != 1 || updated.Pictures[0].ID != second.ID {
		t.Fatalf("gallery = %+v, want only the replacement image", updated.Pictures)
	}
	if updated.Description != "reconditionnée" {
		t.Errorf("description = %q", updated.Description)
	}
	if n := countActions(t, db, model.ActionUpdate, "Product"); n != 1 {
		t.Errorf("UPDATE actions = %d, want exactly 1", n)
	}
}

func TestUpdateProductWithoutPicturesKeepsGallery(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	img := model.ProductImage{Image: "product_images/keep.png"}
	if err := db.Create(&img).Error; err != nil {
		t.Fatalf("seed image: %v", err)
	}

	product, err := svc.Create(ctx, nil, CreateProductRequest{
		Name:       "Souris",
		PictureIDs: []uint{img.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	price := decimal.NewFromInt(5000)
	updated, err := svc.Update(ctx, nil, product.ID, UpdateProductRequest{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Pictures) != 1 {
		t.Fatalf("gallery size = %d, want the existing image untouched", len(updated.Pictures))
	}
}

func TestDeleteProductKeepsAuditSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "vendor@test.com", "secret123")
	product, err := svc.Create(ctx, nil, CreateProductRequest{Name: "Écran 27 pouces", UserID: &owner.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, nil, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}

	var action model.Action
	if err := db.First(&action, "content_type = ? AND action_type = ?", "Product", model.ActionDelete).Error; err != nil {
		t.Fatalf("expected DELETE audit row: %v", err)
	}
	if action.ObjectRepr != "Écran 27 pouces" {
		t.Errorf("object_repr = %q, want pre-delete name snapshot", action.ObjectRepr)
	}
	if action.UserID == nil || *action.UserID != owner.ID {
		t.Errorf("action user = %v, want owner fallback %d", action.UserID, owner.ID)
	}
}

func TestListProductsFiltersByOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@test.com", "secret123")
	bob := seedUser(t, db, "bob@test.com", "secret123")

	for _, spec := range []struct {
		name  string
		owner *uint
	}{
		{"Stylo", &alice.ID},
		{"Cahier", &alice.ID},
		{"Gomme", &bob.ID},
	} {
		if _, err := svc.Create(ctx, nil, CreateProductRequest{Name: spec.name, UserID: spec.owner}); err != nil {
			t.Fatalf("create %s: %v", spec.name, err)
		}
	}

	items, total, err := svc.List(ctx, repository.ProductFilter{UserID: &alice.ID}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2 each", total, len(items))
	}
	for _, p := range items {
		if p.UserID == nil || *p.UserID != alice.ID {
			t.Errorf("product %q leaked into the filtered list", p.Name)
		}
	}
}
