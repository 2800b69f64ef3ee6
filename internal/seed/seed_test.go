package seed

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/testutil"
)

func TestRun(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	if err := Run(db); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}

	t.Run("creates_default_users", func(t *testing.T) {
		var admin models.User
		if err := db.Where("email = ?", "admin@star.com").First(&admin).Error; err != nil {
			t.Fatalf("expected seeded admin: %v", err)
		}
		if admin.Role != models.RoleAdmin || !admin.IsActive {
			t.Errorf("unexpected admin state: role=%s active=%v", admin.Role, admin.IsActive)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Admin123!")); err != nil {
			t.Error("expected admin password to be hashed from the default")
		}

		var reviewer models.User
		if err := db.Where("email = ?", "reviewer@star.com").First(&reviewer).Error; err != nil {
			t.Fatalf("expected seeded reviewer: %v", err)
		}
		if reviewer.Role != models.RoleReviewer {
			t.Errorf("expected reviewer role, got %s", reviewer.Role)
		}
	})

	t.Run("loads_the_full_catalog", func(t *testing.T) {
		counts := map[models.PracticeCategory]int64{
			models.CategoryDiscreteTrial:      13,
			models.CategoryPivotalResponse:    12,
			models.CategoryFunctionalRoutines: 16,
		}
		for category, want := range counts {
			var got int64
			if err := db.Model(&models.BestPractice{}).
				Where("category = ?", category).Count(&got).Error; err != nil {
				t.Fatalf("count failed for %s: %v", category, err)
			}
			if got != want {
				t.Errorf("category %s: expected %d practices, got %d", category, want, got)
			}
		}
	})

	t.Run("practices_carry_display_order", func(t *testing.T) {
		var first models.BestPractice
		if err := db.Where("category = ? AND display_order = ?",
			models.CategoryDiscreteTrial, 1).First(&first).Error; err != nil {
			t.Fatalf("expected a practice at display_order 1: %v", err)
		}
		if !first.IsPositive {
			t.Error("expected the catalog to open with a positive practice")
		}
	})

	t.Run("rerun_is_idempotent", func(t *testing.T) {
		if err := Run(db); err != nil {
			t.Fatalf("second seed run failed: %v", err)
		}

		var users, practices int64
		if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
			t.Fatalf("user count failed: %v", err)
		}
		if err := db.Model(&models.BestPractice{}).Count(&practices).Error; err != nil {
			t.Fatalf("practice count failed: %v", err)
		}
		if users != 2 {
			t.Errorf("expected 2 users after rerun, got %d", users)
		}
		if practices != 41 {
			t.Errorf("expected 41 practices after rerun, got %d", practices)
		}
	})
}
