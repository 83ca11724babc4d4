package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weapondb/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	assert.NoError(t, db.AutoMigrate(&models.Weapon{}))
	return db
}

func seedWeapons(t *testing.T, repo *GORMWeaponRepository) {
	t.Helper()
	weapons := []models.Weapon{
		{Name: "Sword", Class: "Light", Damage: 35, ImageURL: "/img/sword.png"},
		{Name: "AKM", Class: "Medium", Damage: 25, ImageURL: "/img/akm.png"},
		{Name: "M60", Class: "Heavy", Damage: 40, ImageURL: "/img/m60.png"},
		{Name: "V9S", Class: "Light", Damage: 20},
	}
	for i := range weapons {
		assert.NoError(t, repo.Create(&weapons[i]))
	}
}

func TestWeaponList(t *testing.T) {
	repo := NewGORMWeaponRepository(setupTestDB(t))
	seedWeapons(t, repo)

	t.Run("all weapons ordered by id", func(t *testing.T) {
		weapons, err := repo.List("", 0, 0)
		assert.NoError(t, err)
		assert.Len(t, weapons, 4)
		assert.Equal(t, "Sword", weapons[0].Name)
		assert.Equal(t, "V9S", weapons[3].Name)
	})

	t.Run("class filter", func(t *testing.T) {
		weapons, err := repo.List("Light", 0, 0)
		assert.NoError(t, err)
		assert.Len(t, weapons, 2)
		for _, w := range weapons {
			assert.Equal(t, "Light", w.Class)
		}
	})

	t.Run("paging", func(t *testing.T) {
		weapons, err := repo.List("", 3, 3)
		assert.NoError(t, err)
		assert.Len(t, weapons, 1)
		assert.Equal(t, "V9S", weapons[0].Name)
	})

	t.Run("offset past the end", func(t *testing.T) {
		weapons, err := repo.List("", 3, 30)
		assert.NoError(t, err)
		assert.Empty(t, weapons)
	})
}

func TestWeaponCount(t *testing.T) {
	repo := NewGORMWeaponRepository(setupTestDB(t))
	seedWeapons(t, repo)

	total, err := repo.Count("")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)

	light, err := repo.Count("Light")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), light)

	none, err := repo.Count("Archon")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

func TestWeaponGetByID(t *testing.T) {
	repo := NewGORMWeaponRepository(setupTestDB(t))
	seedWeapons(t, repo)

	weapon, err := repo.GetByID(2)
	assert.NoError(t, err)
	assert.Equal(t, "AKM", weapon.Name)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeaponUpdate(t *testing.T) {
	t.Run("without image flag the stored image survives", func(t *testing.T) {
		repo := NewGORMWeaponRepository(setupTestDB(t))
		seedWeapons(t, repo)

		err := repo.Update(&models.Weapon{
			ID: 1, Name: "Dagger", Class: "Light", Damage: 30,
		}, false)
		assert.NoError(t, err)

		updated, err := repo.GetByID(1)
		assert.NoError(t, err)
		assert.Equal(t, "Dagger", updated.Name)
		assert.Equal(t, 30, updated.Damage)
		assert.Equal(t, "/img/sword.png", updated.ImageURL)
	})

	t.Run("with image flag the image is replaced", func(t *testing.T) {
		repo := NewGORMWeaponRepository(setupTestDB(t))
		seedWeapons(t, repo)

		err := repo.Update(&models.Weapon{
			ID: 1, Name: "Sword", Class: "Light", Damage: 35, ImageURL: "/img/new-sword.png",
		}, true)
		assert.NoError(t, err)

		updated, err := repo.GetByID(1)
		assert.NoError(t, err)
		assert.Equal(t, "/img/new-sword.png", updated.ImageURL)
	})

	t.Run("with image flag an empty URL clears the image", func(t *testing.T) {
		repo := NewGORMWeaponRepository(setupTestDB(t))
		seedWeapons(t, repo)

		err := repo.Update(&models.Weapon{
			ID: 1, Name: "Sword", Class: "Light", Damage: 36,
		}, true)
		assert.NoError(t, err)

		updated, err := repo.GetByID(1)
		assert.NoError(t, err)
		assert.Equal(t, "", updated.ImageURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := NewGORMWeaponRepository(setupTestDB(t))
		seedWeapons(t, repo)

		err := repo.Update(&models.Weapon{ID: 999, Name: "Ghost", Class: "Light"}, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWeaponDelete(t *testing.T) {
	repo := NewGORMWeaponRepository(setupTestDB(t))
	seedWeapons(t, repo)

	assert.NoError(t, repo.Delete(1))
	_, err := repo.GetByID(1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting the same id again is not an error.
	assert.NoError(t, repo.Delete(1))

	remaining, err := repo.Count("")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), remaining)
}
