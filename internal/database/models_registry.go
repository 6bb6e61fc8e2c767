package database

import "observatory/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Actor{},
		&models.Post{},
		&models.Comment{},
		&models.Interaction{},
		&models.Submission{},
	}
}
