package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
)

func TestCreateUserHashesPasswordAndAudits(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, nil, CreateUserRequest{
		FirstName: "Awa",
		Email:     "awa@test.com",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	var action model.Action
	if err := db.First(&action, "content_type = ?", "User").Error; err != nil {
		t.Fatalf("expected audit row: %v", err)
	}
	if action.ActionType != model.ActionCreate {
		t.Errorf("action_type = %q, want CREATE", action.ActionType)
	}
	if action.ObjectRepr != "awa@test.com" {
		t.Errorf("object_repr = %q, want the email snapshot", action.ObjectRepr)
	}
	if n := countActions(t, db, model.ActionCreate, "User"); n != 1 {
		t.Errorf("CREATE actions = %d, want exactly 1", n)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, nil, CreateUserRequest{Email: "dup@test.com", Password: "secret123"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateUser(ctx, nil, CreateUserRequest{Email: "dup@test.com", Password: "secret123"}); err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	if n := countActions(t, db, model.ActionCreate, "User"); n != 1 {
		t.Errorf("CREATE actions = %d, want 1 (rejected create must not audit)", n)
	}
}

func TestUpdateUserAuditsOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, nil, CreateUserRequest{Email: "u@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	actor := user.ID
	if _, err := svc.UpdateUser(ctx, &actor, user.ID, UpdateUserRequest{Phone: "771234567"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if n := countActions(t, db, model.ActionUpdate, "User"); n != 1 {
		t.Errorf("UPDATE actions = %d, want exactly 1", n)
	}
}

func TestDeleteUserKeepsAuditSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, nil, CreateUserRequest{Email: "gone@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteUser(ctx, nil, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetUserByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}

	var action model.Action
	if err := db.First(&action, "content_type = ? AND action_type = ?", "User", model.ActionDelete).Error; err != nil {
		t.Fatalf("expected DELETE audit row: %v", err)
	}
	if action.ObjectRepr != "gone@test.com" {
		t.Errorf("object_repr = %q, want pre-delete email snapshot", action.ObjectRepr)
	}
}

func TestDeleteUserUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if err := svc.DeleteUser(context.Background(), nil, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
