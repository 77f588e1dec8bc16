package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Branch struct {
	Code     string   `json:"code" bson:"code"`
	Name     string   `json:"name" bson:"name"`
	Years    []int    `json:"years" bson:"years"`
	Sections []string `json:"sections" bson:"sections"`
}

type College struct {
	Code     string   `json:"code" bson:"code"`
	Name     string   `json:"name" bson:"name"`
	Branches []Branch `json:"branches" bson:"branches"`
}

// DivisionCatalog is a singleton document holding the college/branch/year/
// section hierarchy audience scopes are validated against.
type DivisionCatalog struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Colleges  []College     `json:"colleges" bson:"colleges"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// DefaultCatalog is served when no catalog document has been saved yet.
func DefaultCatalog() DivisionCatalog {
	return DivisionCatalog{
		Colleges: []College{
			{
				Code: "AEC",
				Name: "Aditya Engineering College",
				Branches: []Branch{
					{Code: "CSE", Name: "Computer Science and Engineering", Years: []int{1, 2, 3, 4}, Sections: []string{"A", "B", "C"}},
					{Code: "ECE", Name: "Electronics and Communication Engineering", Years: []int{1, 2, 3, 4}, Sections: []string{"A", "B"}},
					{Code: "EEE", Name: "Electrical and Electronics Engineering", Years: []int{1, 2, 3, 4}, Sections: []string{"A"}},
				},
			},
		},
	}
}
