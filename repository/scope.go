package repository

import (
	"prepboard/models"

	"gorm.io/gorm"
)

// kitchenSectionIDs is a subquery over the kitchen's section ids, used to
// scope item-level lookups to the caller's tenant.
func kitchenSectionIDs(db *gorm.DB, kitchenID string) *gorm.DB {
	return db.Model(&models.Section{}).Select("id").Where("kitchen_id = ?", kitchenID)
}

// kitchenTemplateIDs scopes through sections to the kitchen's template ids.
func kitchenTemplateIDs(db *gorm.DB, kitchenID string) *gorm.DB {
	return db.Model(&models.TaskTemplate{}).Select("id").
		Where("section_id IN (?)", kitchenSectionIDs(db, kitchenID))
}
