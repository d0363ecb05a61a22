package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

func TestMongoUser_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u := mongoUser{
		ID:           oid,
		Username:     "frank",
		PasswordHash: "$2a$10$digest",
		Role:         "ADMIN",
		CreatedAt:    created.Unix(),
		UpdatedAt:    created.Unix(),
	}.toDomain()

	if u.ID != oid.Hex() {
		t.Fatalf("expected id %s, got %s", oid.Hex(), u.ID)
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %s", domain.RoleAdmin, u.Role)
	}
	if !u.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, u.CreatedAt)
	}
}

func TestMongoUser_ToDomain_UnknownRole(t *testing.T) {
	for _, stored := range []string{"", "root", "admin", "SUPERUSER"} {
		u := mongoUser{Role: stored}.toDomain()
		if u.Role != domain.RoleUser {
			t.Fatalf("stored role %q must collapse to %s, got %s", stored, domain.RoleUser, u.Role)
		}
	}
}

func TestUnixToTime_Zero(t *testing.T) {
	if got := unixToTime(0); !got.IsZero() {
		t.Fatalf("expected zero time for zero timestamp, got %v", got)
	}
}
