package models

// Category names exposed to persistence and presentation layers. The set is fixed.
const (
	CategoryGroceries     = "Groceries"
	CategoryDiningOut     = "Dining Out"
	CategoryTransport     = "Transportation"
	CategoryHousing       = "Housing"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryHealth        = "Health"
	CategoryInsurance     = "Insurance"
	CategorySubscriptions = "Subscriptions"
	CategoryTravel        = "Travel"
	CategoryEducation     = "Education"
	CategoryIncome        = "Income"
	CategoryOther         = "Other"
)

// UnknownDescription replaces an empty description cell.
const UnknownDescription = "Unknown"

// MonthKeyLayout is the time layout of a month key ("2024-01").
const MonthKeyLayout = "2006-01"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

var knownCategories = []string{
	CategoryGroceries,
	CategoryDiningOut,
	CategoryTransport,
	CategoryHousing,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryInsurance,
	CategorySubscriptions,
	CategoryTravel,
	CategoryEducation,
	CategoryIncome,
	CategoryOther,
}

// Categories returns the fixed category set in display order.
func Categories() []string {
	out := make([]string, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// IsKnownCategory reports whether name belongs to the fixed category set.
func IsKnownCategory(name string) bool {
	for _, c := range knownCategories {
		if c == name {
			return true
		}
	}
	return false
}
