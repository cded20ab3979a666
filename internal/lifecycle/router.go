package lifecycle

import "participium/internal/entities"

// DefaultOffice handles every category without an explicit office.
const DefaultOffice = "municipal administrator"

// DefaultOffices returns the stock category to office table.
func DefaultOffices() map[entities.Category]string {
	return map[entities.Category]string{
		entities.CategoryWaterSupply:            "water and sewer infrastructure officer",
		entities.CategoryArchitecturalBarriers:  "accessibility and urban mobility officer",
		entities.CategorySewerSystem:            "water and sewer infrastructure officer",
		entities.CategoryPublicLighting:         "public lighting officer",
		entities.CategoryWaste:                  "sanitation and waste management officer",
		entities.CategoryRoadSignsTrafficLights: "traffic and road signs officer",
		entities.CategoryRoadsUrbanFurnishings:  "road maintenance officer",
		entities.CategoryPublicGreenAreas:       "parks and green areas officer",
		entities.CategoryOther:                  DefaultOffice,
	}
}

// Router maps report categories to the office responsible for them.
// It is immutable after construction and safe for concurrent use.
type Router struct {
	offices map[entities.Category]string
}

// NewRouter copies offices into a new Router. A nil map yields DefaultOffices.
func NewRouter(offices map[entities.Category]string) *Router {
	if offices == nil {
		offices = DefaultOffices()
	}
	cp := make(map[entities.Category]string, len(offices))
	for k, v := range offices {
		cp[k] = v
	}
	return &Router{offices: cp}
}

// Office resolves the office name for category, falling back to DefaultOffice.
func (r *Router) Office(category entities.Category) string {
	if office, ok := r.offices[category]; ok && office != "" {
		return office
	}
	return DefaultOffice
}

// MaintainerCategory is the key used to pick external maintainers. Maintainers
// are matched on the category itself, not on the office name.
func (r *Router) MaintainerCategory(category entities.Category) entities.Category {
	return category
}

// MergeOffices overlays overrides (category value to office name) on the
// default table. Unknown categories and blank offices are ignored.
func MergeOffices(overrides map[string]string) map[entities.Category]string {
	offices := DefaultOffices()
	for k, v := range overrides {
		c := entities.Category(k)
		if !c.Valid() || v == "" {
			continue
		}
		offices[c] = v
	}
	return offices
}
