package services

import (
	"context"
	"testing"

	"linkconnect/internal/models"
)

func TestCatalogEffectiveFallback(t *testing.T) {
	ctx := context.Background()
	store := &memCatalogStore{}
	svc := NewCatalogService(store)

	catalog, err := svc.Effective(ctx)
	if err != nil {
		t.Fatalf("Effective() error = %v", err)
	}
	if len(catalog.Colleges) == 0 {
		t.Fatal("expected fallback catalog when nothing saved")
	}
	if catalog.Colleges[0].Code != "AEC" {
		t.Errorf("fallback college = %q, want AEC", catalog.Colleges[0].Code)
	}

	saved, err := svc.Save(ctx, []models.College{{Code: "XYZ", Name: "Test College"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(saved.Colleges) != 1 || saved.Colleges[0].Code != "XYZ" {
		t.Errorf("saved catalog = %+v", saved.Colleges)
	}

	catalog, err = svc.Effective(ctx)
	if err != nil {
		t.Fatalf("Effective() error = %v", err)
	}
	if len(catalog.Colleges) != 1 || catalog.Colleges[0].Code != "XYZ" {
		t.Errorf("effective catalog after save = %+v, want the saved one", catalog.Colleges)
	}
}

func TestValidateAudienceAgainst(t *testing.T) {
	catalog := models.DefaultCatalog()

	tests := []struct {
		name    string
		filter  AudienceFilter
		wantErr bool
	}{
		{"empty scope", AudienceFilter{}, false},
		{"known college", AudienceFilter{CollegeCode: "AEC"}, false},
		{"unknown college", AudienceFilter{CollegeCode: "NOPE"}, true},
		{"known branch", AudienceFilter{CollegeCode: "AEC", BranchCodes: []string{"CSE"}}, false},
		{"unknown branch", AudienceFilter{CollegeCode: "AEC", BranchCodes: []string{"MECH"}}, true},
		{"branch without college checks all colleges", AudienceFilter{BranchCodes: []string{"ECE"}}, false},
		{"offered year", AudienceFilter{CollegeCode: "AEC", Years: []int{3}}, false},
		{"bogus year", AudienceFilter{CollegeCode: "AEC", Years: []int{9}}, true},
		{"known section", AudienceFilter{CollegeCode: "AEC", Sections: []string{"A"}}, false},
		{"unknown section", AudienceFilter{CollegeCode: "AEC", Sections: []string{"Z"}}, true},
		{"valid gender", AudienceFilter{Genders: []string{"female"}}, false},
		{"invalid gender", AudienceFilter{Genders: []string{"unknown"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAudienceAgainst(catalog, tt.filter)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAudienceAgainst() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				svcErr, ok := AsError(err)
				if !ok || svcErr.Status != 400 {
					t.Errorf("expected a 400 validation error, got %v", err)
				}
			}
		})
	}
}
