package categorizer

import "fjacquet/spendlens/internal/models"

// DefaultRules returns the built-in keyword table. Matching is plain substring
// containment, so short keywords here can hit unrelated merchants ("gas" in
// "Las Vegas"); put a longer keyword in the intended category when a collision
// shows up.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{Name: models.CategoryGroceries, Keywords: []string{
			"whole foods", "trader joe", "food lion", "safeway", "kroger", "publix",
			"wegmans", "aldi", "lidl", "costco", "sprouts", "instacart", "grocery",
			"supermarket", "h-e-b", "giant eagle", "stop & shop", "albertsons",
		}},
		{Name: models.CategoryDiningOut, Keywords: []string{
			"restaurant", "cafe", "coffee", "starbucks", "dunkin", "mcdonald", "burger",
			"pizza", "doordash", "uber eats", "grubhub", "chipotle", "taco bell",
			"wendy's", "chick-fil-a", "panera", "sushi", "diner", "bistro", "grill", "bar",
		}},
		{Name: models.CategoryTransport, Keywords: []string{
			"uber", "lyft", "shell", "chevron", "exxon", "mobil", "bp ", "gas", "fuel",
			"parking", "transit", "metro", "toll", "amtrak", "train", "taxi",
		}},
		{Name: models.CategoryHousing, Keywords: []string{
			"rent", "mortgage", "hoa", "apartment", "property management", "landlord",
		}},
		{Name: models.CategoryUtilities, Keywords: []string{
			"electric", "water", "utility", "comcast", "xfinity", "verizon", "at&t",
			"t-mobile", "internet", "power", "energy", "sewer", "waste management",
		}},
		{Name: models.CategoryEntertainment, Keywords: []string{
			"cinema", "movie", "theater", "theatre", "ticketmaster", "steam", "playstation",
			"xbox", "nintendo", "concert", "amc ", "bowling", "museum",
		}},
		{Name: models.CategoryShopping, Keywords: []string{
			"amazon", "amzn", "target", "walmart", "best buy", "ebay", "etsy", "ikea",
			"home depot", "lowe's", "macy", "nordstrom", "apple store", "clothing",
		}},
		{Name: models.CategoryHealth, Keywords: []string{
			"pharmacy", "cvs", "walgreens", "doctor", "dental", "dentist", "clinic",
			"hospital", "medical", "optometr", "gym", "fitness",
		}},
		{Name: models.CategoryInsurance, Keywords: []string{
			"insurance", "geico", "state farm", "allstate", "progressive", "aetna",
			"blue cross", "metlife",
		}},
		{Name: models.CategorySubscriptions, Keywords: []string{
			"netflix", "spotify", "hulu", "disney+", "youtube premium", "apple.com/bill",
			"icloud", "adobe", "patreon", "subscription", "membership", "prime video",
		}},
		{Name: models.CategoryTravel, Keywords: []string{
			"airline", "airlines", "airbnb", "hotel", "marriott", "hilton", "expedia",
			"booking.com", "delta air", "united air", "southwest", "hertz", "avis",
		}},
		{Name: models.CategoryEducation, Keywords: []string{
			"tuition", "university", "college", "school", "coursera", "udemy",
			"bookstore", "student loan",
		}},
		{Name: models.CategoryIncome, Keywords: []string{
			"payroll", "salary", "direct dep", "paycheck", "interest paid", "dividend",
			"refund", "reimbursement",
		}},
	}
}
