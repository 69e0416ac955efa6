package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
)

func TestSubscriptionEndDateDefaultsToThirtyDays(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubscriptionService(repository.NewSubscriptionRepository(db))
	user := seedUser(t, db, "sub@test.com", "password")

	start := time.Now().Add(-time.Hour)
	sub, err := svc.Create(context.Background(), CreateSubscriptionRequest{
		UserID:    user.ID,
		Name:      "basic",
		StartDate: &start,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := start.Add(model.DefaultSubscriptionTerm)
	if !sub.EndDate.Equal(want) {
		t.Errorf("end_date = %v, want %v", sub.EndDate, want)
	}
	if sub.Status != model.SubscriptionActive {
		t.Errorf("status = %q, want active", sub.Status)
	}
}

func TestSubscriptionStatusTracksWallClock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubscriptionService(repository.NewSubscriptionRepository(db))
	user := seedUser(t, db, "sub@test.com", "password")
	ctx := context.Background()

	tests := []struct {
		name string
		end  time.Duration // offset from now
		want string
	}{
		{"future end date", time.Hour, model.SubscriptionActive},
		{"past end date", -time.Hour, model.SubscriptionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now().Add(-48 * time.Hour)
			end := time.Now().Add(tt.end)
			sub, err := svc.Create(ctx, CreateSubscriptionRequest{
				UserID:    user.ID,
				Name:      tt.name,
				StartDate: &start,
				EndDate:   &end,
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if sub.Status != tt.want {
				t.Errorf("status = %q, want %q", sub.Status, tt.want)
			}
		})
	}
}

func TestSubscriptionUnrelatedUpdateRecomputesStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubscriptionService(repository.NewSubscriptionRepository(db))
	user := seedUser(t, db, "sub@test.com", "password")
	ctx := context.Background()

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	sub, err := svc.Create(ctx, CreateSubscriptionRequest{
		UserID:    user.ID,
		Name:      "basic",
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.Status != model.SubscriptionActive {
		t.Fatalf("status = %q, want active", sub.Status)
	}

	// Age the subscription behind the service's back, then touch an
	// unrelated field: the save must re-evaluate expiry.
	expired := time.Now().Add(-time.Minute)
	if err := db.Model(&model.Subscription{}).Where("id = ?", sub.ID).
		UpdateColumn("end_date", expired).Error; err != nil {
		t.Fatalf("age subscription: %v", err)
	}

	updated, err := svc.Update(ctx, sub.ID, UpdateSubscriptionRequest{Description: "renamed only"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.SubscriptionExpired {
		t.Errorf("status after unrelated update = %q, want expired", updated.Status)
	}
}
