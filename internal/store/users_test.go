package store

import (
	"context"
	"testing"

	"squad/internal/models"
)

func strptr(s string) *string { return &s }

func TestSearchUsers(t *testing.T) {
	s := newTestStore()
	kira := mustRegister(t, s, "kira@example.com", "kira")
	mustRegister(t, s, "max@example.com", "maxpower")
	ctx := context.Background()

	interests := []string{"музыка", "игры"}
	if _, err := s.UpdateUser(ctx, kira.ID, models.UserUpdate{
		DisplayName: strptr("Кира"),
		Interests:   &interests,
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"By Username", "KIRA", 1},
		{"By Display Name", "кира", 1},
		{"By Interest", "МУЗ", 1},
		{"Substring", "power", 1},
		{"No Match", "джаз", 0},
		{"Blank", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(s.SearchUsers(tt.query)); got != tt.want {
				t.Errorf("SearchUsers(%q) = %d results, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestUpdateUserMergesPartialFields(t *testing.T) {
	s := newTestStore()
	user := mustRegister(t, s, "kira@example.com", "kira")
	ctx := context.Background()

	updated, err := s.UpdateUser(ctx, user.ID, models.UserUpdate{Bio: strptr("живу норм")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Bio != "живу норм" {
		t.Errorf("expected bio updated, got %q", updated.Bio)
	}
	if updated.Username != "kira" || updated.Email != "kira@example.com" {
		t.Error("expected untouched fields to survive a partial update")
	}
}

func TestUpdateUserUsernameCollision(t *testing.T) {
	s := newTestStore()
	mustRegister(t, s, "kira@example.com", "kira")
	max := mustRegister(t, s, "max@example.com", "max")

	_, err := s.UpdateUser(context.Background(), max.ID, models.UserUpdate{Username: strptr("Kira")})
	if appCode(err) != "DUPLICATE_IDENTITY" {
		t.Errorf("expected DUPLICATE_IDENTITY, got %v", err)
	}
}

func TestUpdateUserUnknownID(t *testing.T) {
	s := newTestStore()
	_, err := s.UpdateUser(context.Background(), "ghost", models.UserUpdate{Bio: strptr("x")})
	if appCode(err) != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestNowStatusLifecycle(t *testing.T) {
	s := newTestStore()
	user := mustRegister(t, s, "kira@example.com", "kira")
	ctx := context.Background()

	updated, err := s.SetNowStatus(ctx, user.ID, models.NowStatus{
		Type:  models.NowStatusListening,
		Value: "кавабанга",
	})
	if err != nil {
		t.Fatalf("SetNowStatus: %v", err)
	}
	if updated.NowStatus == nil || updated.NowStatus.Value != "кавабанга" {
		t.Errorf("expected now status set, got %v", updated.NowStatus)
	}

	if _, err := s.SetNowStatus(ctx, user.ID, models.NowStatus{Type: "sleeping", Value: "zzz"}); appCode(err) != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR for unknown type, got %v", err)
	}

	cleared, err := s.ClearNowStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("ClearNowStatus: %v", err)
	}
	if cleared.NowStatus != nil {
		t.Errorf("expected now status cleared, got %v", cleared.NowStatus)
	}
}
