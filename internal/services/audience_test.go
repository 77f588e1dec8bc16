package services

import (
	"testing"

	"linkconnect/internal/models"
)

func TestAudienceFilterMatches(t *testing.T) {
	student := models.User{
		Role:        models.RoleStudent,
		Active:      true,
		CollegeCode: "AEC",
		BranchCode:  "CSE",
		Year:        3,
		Section:     "A",
		Gender:      "female",
	}

	tests := []struct {
		name   string
		filter AudienceFilter
		user   models.User
		want   bool
	}{
		{"empty filter matches any active student", AudienceFilter{}, student, true},
		{"faculty never matches", AudienceFilter{}, models.User{Role: models.RoleFaculty, Active: true}, false},
		{"inactive student never matches", AudienceFilter{}, models.User{Role: models.RoleStudent, Active: false}, false},
		{"college match", AudienceFilter{CollegeCode: "AEC"}, student, true},
		{"college mismatch", AudienceFilter{CollegeCode: "XYZ"}, student, false},
		{"branch in list", AudienceFilter{BranchCodes: []string{"ECE", "CSE"}}, student, true},
		{"branch not in list", AudienceFilter{BranchCodes: []string{"ECE", "EEE"}}, student, false},
		{"year in list", AudienceFilter{Years: []int{2, 3}}, student, true},
		{"year not in list", AudienceFilter{Years: []int{1, 2}}, student, false},
		{"section in list", AudienceFilter{Sections: []string{"A"}}, student, true},
		{"section not in list", AudienceFilter{Sections: []string{"B"}}, student, false},
		{"gender in list", AudienceFilter{Genders: []string{"female"}}, student, true},
		{"gender not in list", AudienceFilter{Genders: []string{"male"}}, student, false},
		{
			"all dimensions must hold",
			AudienceFilter{CollegeCode: "AEC", BranchCodes: []string{"CSE"}, Years: []int{3}, Sections: []string{"B"}},
			student,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.user); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAudienceFilterToBSON(t *testing.T) {
	t.Run("empty filter still pins role and active", func(t *testing.T) {
		q := AudienceFilter{}.ToBSON()
		if q["role"] != models.RoleStudent {
			t.Errorf("role = %v, want %q", q["role"], models.RoleStudent)
		}
		if q["active"] != true {
			t.Errorf("active = %v, want true", q["active"])
		}
		if len(q) != 2 {
			t.Errorf("unrestricted dimensions leaked into query: %v", q)
		}
	})

	t.Run("present dimensions appear", func(t *testing.T) {
		f := AudienceFilter{CollegeCode: "AEC", BranchCodes: []string{"CSE"}, Years: []int{3}}
		q := f.ToBSON()
		if q["college_code"] != "AEC" {
			t.Errorf("college_code = %v", q["college_code"])
		}
		if _, ok := q["branch_code"]; !ok {
			t.Error("branch_code missing from query")
		}
		if _, ok := q["year"]; !ok {
			t.Error("year missing from query")
		}
		if _, ok := q["section"]; ok {
			t.Error("absent section should not restrict the query")
		}
	})
}
