package services

import (
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"
)

type CatalogService interface {
	SearchSkills(query string, limit int) ([]dto.SkillResponse, error)
	SearchJobTitles(query string, limit int) ([]dto.JobTitleResponse, error)
	ListStates() ([]dto.StateResponse, error)
	ListCities(stateID string) ([]dto.CityResponse, error)
	SearchCities(query string, limit int) ([]dto.CityResponse, error)
}

type CatalogServiceImpl struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &CatalogServiceImpl{catalogRepo: catalogRepo}
}

func (s *CatalogServiceImpl) SearchSkills(query string, limit int) ([]dto.SkillResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	skills, err := s.catalogRepo.SearchSkills(query, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSkillResponses(skills), nil
}

func (s *CatalogServiceImpl) SearchJobTitles(query string, limit int) ([]dto.JobTitleResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	titles, err := s.catalogRepo.SearchJobTitles(query, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobTitleResponses(titles), nil
}

func (s *CatalogServiceImpl) ListStates() ([]dto.StateResponse, error) {
	states, err := s.catalogRepo.ListStates()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewStateResponses(states), nil
}

func (s *CatalogServiceImpl) ListCities(stateID string) ([]dto.CityResponse, error) {
	cities, err := s.catalogRepo.ListCitiesByState(stateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCityResponses(cities), nil
}

func (s *CatalogServiceImpl) SearchCities(query string, limit int) ([]dto.CityResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	cities, err := s.catalogRepo.SearchCities(query, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCityResponses(cities), nil
}
