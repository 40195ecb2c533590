package enums

// PartCategory is the category a part type belongs to. The column stores
// free text; this list feeds the UI dropdowns and is not enforced by the
// store.
type PartCategory string

const (
	PartCategoryScreen       PartCategory = "Screen"
	PartCategoryBattery      PartCategory = "Battery"
	PartCategoryBackCover    PartCategory = "Back Cover"
	PartCategoryChargingPort PartCategory = "Charging Port"
	PartCategoryCamera       PartCategory = "Camera"
	PartCategoryAdhesive     PartCategory = "Adhesive"
	PartCategorySmallParts   PartCategory = "Small Parts"
	PartCategoryTools        PartCategory = "Tools"
	PartCategoryOther        PartCategory = "Other"
)

var partCategories = []PartCategory{
	PartCategoryScreen,
	PartCategoryBattery,
	PartCategoryBackCover,
	PartCategoryChargingPort,
	PartCategoryCamera,
	PartCategoryAdhesive,
	PartCategorySmallParts,
	PartCategoryTools,
	PartCategoryOther,
}

// PartCategories returns the fixed category list in display order.
func PartCategories() []PartCategory {
	out := make([]PartCategory, len(partCategories))
	copy(out, partCategories)
	return out
}

func (c PartCategory) String() string {
	return string(c)
}
