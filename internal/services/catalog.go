package services

import (
	"context"
	"fmt"
	"slices"

	"linkconnect/internal/models"
)

// CatalogService serves the division catalog and validates link audience
// scopes against it before they are persisted.
type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Effective returns the persisted catalog or the hard-coded fallback when
// none has been saved yet.
func (s *CatalogService) Effective(ctx context.Context) (models.DivisionCatalog, error) {
	doc, err := s.store.Get(ctx)
	if err != nil {
		return models.DivisionCatalog{}, err
	}
	if doc == nil || len(doc.Colleges) == 0 {
		return models.DefaultCatalog(), nil
	}
	return *doc, nil
}

// Save replaces the whole catalog (admin only; singleton upsert). Shape is
// coerced, not validated: nil slices become empty.
func (s *CatalogService) Save(ctx context.Context, colleges []models.College) (models.DivisionCatalog, error) {
	if colleges == nil {
		colleges = []models.College{}
	}
	for i := range colleges {
		if colleges[i].Branches == nil {
			colleges[i].Branches = []models.Branch{}
		}
	}
	doc, err := s.store.Save(ctx, colleges)
	if err != nil {
		return models.DivisionCatalog{}, err
	}
	return *doc, nil
}

// ValidateAudience checks an audience scope against the effective catalog.
// Unknown college/branch/year/section values produce a validation error so a
// link can never target a division that does not exist.
func (s *CatalogService) ValidateAudience(ctx context.Context, f AudienceFilter) error {
	catalog, err := s.Effective(ctx)
	if err != nil {
		return err
	}
	return ValidateAudienceAgainst(catalog, f)
}

// ValidateAudienceAgainst is the pure validation used by ValidateAudience.
func ValidateAudienceAgainst(catalog models.DivisionCatalog, f AudienceFilter) error {
	if f.CollegeCode == "" {
		// unrestricted college: branch/year/section values may belong to any
		// college in the catalog
		return validateDims(catalog.Colleges, f)
	}

	var college *models.College
	for i := range catalog.Colleges {
		if catalog.Colleges[i].Code == f.CollegeCode {
			college = &catalog.Colleges[i]
			break
		}
	}
	if college == nil {
		return NewValidation(fmt.Sprintf("unknown college code %q", f.CollegeCode))
	}
	return validateDims([]models.College{*college}, f)
}

func validateDims(colleges []models.College, f AudienceFilter) error {
	branches := make(map[string]struct{})
	years := make(map[int]struct{})
	sections := make(map[string]struct{})
	for _, c := range colleges {
		for _, b := range c.Branches {
			branches[b.Code] = struct{}{}
			for _, y := range b.Years {
				years[y] = struct{}{}
			}
			for _, sec := range b.Sections {
				sections[sec] = struct{}{}
			}
		}
	}

	for _, b := range f.BranchCodes {
		if _, ok := branches[b]; !ok {
			return NewValidation(fmt.Sprintf("unknown branch code %q", b))
		}
	}
	for _, y := range f.Years {
		if _, ok := years[y]; !ok {
			return NewValidation(fmt.Sprintf("year %d is not offered", y))
		}
	}
	for _, sec := range f.Sections {
		if _, ok := sections[sec]; !ok {
			return NewValidation(fmt.Sprintf("unknown section %q", sec))
		}
	}
	for _, g := range f.Genders {
		if !slices.Contains([]string{"male", "female", "other"}, g) {
			return NewValidation(fmt.Sprintf("invalid gender %q", g))
		}
	}
	return nil
}
