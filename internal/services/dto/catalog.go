package dto

import "jobvibes_backend/internal/models"

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewSkillResponses(skills []models.Skill) []SkillResponse {
	result := make([]SkillResponse, 0, len(skills))
	for _, skill := range skills {
		result = append(result, SkillResponse{ID: skill.ID, Name: skill.Name})
	}
	return result
}

type JobTitleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewJobTitleResponses(titles []models.JobTitle) []JobTitleResponse {
	result := make([]JobTitleResponse, 0, len(titles))
	for _, title := range titles {
		result = append(result, JobTitleResponse{ID: title.ID, Name: title.Name})
	}
	return result
}

type StateResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewStateResponses(states []models.State) []StateResponse {
	result := make([]StateResponse, 0, len(states))
	for _, state := range states {
		result = append(result, StateResponse{ID: state.ID, Name: state.Name})
	}
	return result
}

type CityResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StateID string `json:"state_id"`
}

func NewCityResponses(cities []models.City) []CityResponse {
	result := make([]CityResponse, 0, len(cities))
	for _, city := range cities {
		result = append(result, CityResponse{ID: city.ID, Name: city.Name, StateID: city.StateID})
	}
	return result
}
