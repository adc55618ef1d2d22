package repositories

import (
	"jobvibes_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	// Skill operations
	SearchSkills(query string, limit int) ([]models.Skill, error)
	SyncSkills(names []string) error

	// Job title operations
	SearchJobTitles(query string, limit int) ([]models.JobTitle, error)

	// Location operations
	ListStates() ([]models.State, error)
	ListCitiesByState(stateID string) ([]models.City, error)
	SearchCities(query string, limit int) ([]models.City, error)
}

type CatalogRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

func (r *CatalogRepositoryImpl) SearchSkills(query string, limit int) ([]models.Skill, error) {
	var skills []models.Skill
	q := r.db.Model(&models.Skill{}).Order("name ASC").Limit(limit)
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}
	err := q.Find(&skills).Error
	return skills, err
}

// SyncSkills folds candidate-entered skills into the shared catalog so later
// searches can suggest them. Duplicates are ignored via the name index.
func (r *CatalogRepositoryImpl) SyncSkills(names []string) error {
	if len(names) == 0 {
		return nil
	}
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		skills = append(skills, models.Skill{Name: name})
	}
	if len(skills) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&skills).Error
}

func (r *CatalogRepositoryImpl) SearchJobTitles(query string, limit int) ([]models.JobTitle, error) {
	var titles []models.JobTitle
	q := r.db.Model(&models.JobTitle{}).Order("name ASC").Limit(limit)
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}
	err := q.Find(&titles).Error
	return titles, err
}

func (r *CatalogRepositoryImpl) ListStates() ([]models.State, error) {
	var states []models.State
	err := r.db.Order("name ASC").Find(&states).Error
	return states, err
}

func (r *CatalogRepositoryImpl) ListCitiesByState(stateID string) ([]models.City, error) {
	var cities []models.City
	err := r.db.Where("state_id = ?", stateID).Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *CatalogRepositoryImpl) SearchCities(query string, limit int) ([]models.City, error) {
	var cities []models.City
	q := r.db.Model(&models.City{}).Order("name ASC").Limit(limit)
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}
	err := q.Find(&cities).Error
	return cities, err
}
