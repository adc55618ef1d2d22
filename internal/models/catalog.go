package models

// Skill is a catalog entry; new names are synced in from candidate profiles.
type Skill struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// JobTitle is the searchable list of titles the posting screens suggest.
type JobTitle struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type State struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// City names repeat across states, hence the composite unique index.
type City struct {
	BaseModel
	Name    string `gorm:"not null;uniqueIndex:idx_city_name_state" json:"name"`
	StateID string `gorm:"not null;uniqueIndex:idx_city_name_state;index" json:"state_id"`

	State *State `gorm:"foreignKey:StateID" json:"-"`
}
