package database

import (
	"fmt"
	"testing"

	"github.com/example/quizkit/pkg/models"
	"github.com/google/uuid"
)

// setupTestDB opens a fresh in-memory database for a test and tears it
// down afterwards
func setupTestDB(t *testing.T) {
	t.Helper()
	if err := ConnectTest(); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { Close() })
}

// createTestUser inserts a user with generated credentials
func createTestUser(t *testing.T, nickname string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    nickname + "@example.com",
		Nickname: nickname,
		Password: "hashed-password",
	}
	if err := NewUserRepository().Create(user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestKit inserts a kit with n questions owned by the given user
func createTestKit(t *testing.T, ownerID string, n int) *models.Kit {
	t.Helper()
	kit := &models.Kit{
		ID:        uuid.NewString(),
		Name:      "test kit",
		CreatedBy: ownerID,
	}
	for i := 0; i < n; i++ {
		kit.Questions = append(kit.Questions, models.KitQuestion{
			ID:       uuid.NewString(),
			Question: fmt.Sprintf("question %d", i+1),
			Answer:   fmt.Sprintf("answer %d", i+1),
		})
	}
	if err := NewKitRepository().Create(kit); err != nil {
		t.Fatalf("failed to create test kit: %v", err)
	}
	return kit
}

// createTestSession inserts a session row for a user and returns its id
func createTestSession(t *testing.T, userID string) string {
	t.Helper()
	id := uuid.NewString()
	if err := NewSessionRepository().Create(id, userID); err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return id
}
