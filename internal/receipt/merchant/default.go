package merchant

// defaultRows ships the stock merchant table: at least 40 well-known
// retailers and restaurant chains with their common OCR misspellings.
// Weights are qualitative: 0.95 for chains with a distinctive name
// that's unlikely to appear in body text (no phonebook-word
// collisions), 0.85-0.93 for other chain names, and 0.7-0.75 for names
// that plausibly collide with normal receipt prose ("gap", "shell",
// "ross"). This table is a data
// file, not an algorithm — extend it by appending rows.
var defaultRows = []Row{
	// Grocery / warehouse
	{Pattern: "walmart", Name: "Walmart", Weight: 0.95},
	{Pattern: `wal[\s\-]*mart`, Name: "Walmart", Weight: 0.93},
	{Pattern: "target", Name: "Target", Weight: 0.9},
	{Pattern: "costco", Name: "Costco", Weight: 0.95},
	{Pattern: "kroger", Name: "Kroger", Weight: 0.95},
	{Pattern: "safeway", Name: "Safeway", Weight: 0.95},
	{Pattern: "whole foods", Name: "Whole Foods Market", Weight: 0.95},
	{Pattern: "trader joe", Name: "Trader Joe's", Weight: 0.95},
	{Pattern: "aldi", Name: "Aldi", Weight: 0.9},
	{Pattern: "publix", Name: "Publix", Weight: 0.95},
	{Pattern: "meijer", Name: "Meijer", Weight: 0.95},
	{Pattern: `h[\s\-]*e[\s\-]*b\b`, Name: "H-E-B", Weight: 0.9},
	{Pattern: "sprouts", Name: "Sprouts Farmers Market", Weight: 0.9},
	{Pattern: "wegmans", Name: "Wegmans", Weight: 0.95},
	{Pattern: "food lion", Name: "Food Lion", Weight: 0.93},
	{Pattern: "giant eagle", Name: "Giant Eagle", Weight: 0.93},
	{Pattern: "stop.{0,3}shop", Name: "Stop & Shop", Weight: 0.9},
	{Pattern: "albertsons", Name: "Albertsons", Weight: 0.95},
	{Pattern: "vons", Name: "Vons", Weight: 0.85},
	{Pattern: "winn.{0,3}dixie", Name: "Winn-Dixie", Weight: 0.92},

	// Pharmacy
	{Pattern: "walgreens", Name: "Walgreens", Weight: 0.95},
	{Pattern: "cvs", Name: "CVS Pharmacy", Weight: 0.9},
	{Pattern: "rite aid", Name: "Rite Aid", Weight: 0.93},

	// Fast food / restaurant
	{Pattern: "mcdonald", Name: "McDonald's", Weight: 0.95},
	{Pattern: "burger king", Name: "Burger King", Weight: 0.93},
	{Pattern: "wendy", Name: "Wendy's", Weight: 0.9},
	{Pattern: "subway", Name: "Subway", Weight: 0.9},
	{Pattern: "taco bell", Name: "Taco Bell", Weight: 0.93},
	{Pattern: "\\bkfc\\b", Name: "KFC", Weight: 0.85},
	{Pattern: "chipotle", Name: "Chipotle Mexican Grill", Weight: 0.95},
	{Pattern: "domino", Name: "Domino's Pizza", Weight: 0.9},
	{Pattern: "pizza hut", Name: "Pizza Hut", Weight: 0.93},
	{Pattern: "papa john", Name: "Papa John's", Weight: 0.93},
	{Pattern: "dunkin", Name: "Dunkin'", Weight: 0.9},
	{Pattern: "tim\\s*horton", Name: "Tim Hortons", Weight: 0.93},
	{Pattern: "starbucks", Name: "Starbucks", Weight: 0.95},
	{Pattern: "panera", Name: "Panera Bread", Weight: 0.93},
	{Pattern: "chick.{0,3}fil.{0,3}a", Name: "Chick-fil-A", Weight: 0.93},
	{Pattern: "five guys", Name: "Five Guys", Weight: 0.93},
	{Pattern: "in.{0,3}n.{0,3}out", Name: "In-N-Out Burger", Weight: 0.9},

	// Retail / home
	{Pattern: "ikea", Name: "IKEA", Weight: 0.93},
	{Pattern: "best buy", Name: "Best Buy", Weight: 0.93},
	{Pattern: "home depot", Name: "The Home Depot", Weight: 0.93},
	{Pattern: "lowe.?s", Name: "Lowe's", Weight: 0.88},
	{Pattern: "macy.?s", Name: "Macy's", Weight: 0.88},
	{Pattern: "nordstrom", Name: "Nordstrom", Weight: 0.93},
	{Pattern: "tj\\s*maxx", Name: "T.J. Maxx", Weight: 0.9},
	{Pattern: "marshalls", Name: "Marshalls", Weight: 0.9},
	{Pattern: "\\bross\\b", Name: "Ross Dress for Less", Weight: 0.75},
	{Pattern: "\\bgap\\b", Name: "Gap", Weight: 0.7},
	{Pattern: "old navy", Name: "Old Navy", Weight: 0.93},
	{Pattern: "gamestop", Name: "GameStop", Weight: 0.93},
	{Pattern: "office depot", Name: "Office Depot", Weight: 0.93},
	{Pattern: "staples", Name: "Staples", Weight: 0.9},

	// Fuel / convenience
	{Pattern: "7.{0,2}eleven", Name: "7-Eleven", Weight: 0.9},
	{Pattern: "circle k", Name: "Circle K", Weight: 0.93},
	{Pattern: "\\bshell\\b", Name: "Shell", Weight: 0.7},
	{Pattern: "chevron", Name: "Chevron", Weight: 0.9},
	{Pattern: "\\bexxon\\b", Name: "Exxon", Weight: 0.85},
}

// DefaultTable returns the stock merchant table. Safe to call from
// multiple goroutines; the returned Table is never mutated.
func DefaultTable() *Table {
	return NewTable(defaultRows)
}
