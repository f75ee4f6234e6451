// Package categorize provides the stock implementation of the
// receipt.Categorizer interface the pipeline consults through a narrow
// function boundary (spec §6). The keyword lists are grounded on the
// category dictionary the original Python service used to tag items
// before this module existed, extended with merchant-name hints the way
// internal/entity/category.go's Canonicalize resolves synonyms.
package categorize

import (
	"strings"

	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

// merchantHint pairs a lowercased merchant-name fragment with the
// category it implies.
type merchantHint struct {
	fragment string
	category receipt.Category
}

// merchantHints is checked in order before the item-keyword table,
// since the merchant is usually a stronger signal than any single item
// name ("everything at a pharmacy checkout counter is plausibly
// 'pharmacy'"). A fixed-order slice rather than a map: map iteration
// order is randomized per process, which would make Categorize return
// a different answer for the same input across runs whenever a
// merchant string matched two overlapping fragments.
var merchantHints = []merchantHint{
	{"mcdonald", receipt.CategoryRestaurant},
	{"burger", receipt.CategoryRestaurant},
	{"wendy", receipt.CategoryRestaurant},
	{"subway", receipt.CategoryRestaurant},
	{"pizza", receipt.CategoryRestaurant},
	{"starbucks", receipt.CategoryRestaurant},
	{"coffee", receipt.CategoryRestaurant},
	{"cafe", receipt.CategoryRestaurant},
	{"restaurant", receipt.CategoryRestaurant},
	{"taco", receipt.CategoryRestaurant},
	{"kfc", receipt.CategoryRestaurant},
	{"chipotle", receipt.CategoryRestaurant},
	{"grill", receipt.CategoryRestaurant},

	{"walmart", receipt.CategoryGroceries},
	{"target", receipt.CategoryGroceries},
	{"costco", receipt.CategoryGroceries},
	{"whole foods", receipt.CategoryGroceries},
	{"trader joe", receipt.CategoryGroceries},
	{"kroger", receipt.CategoryGroceries},
	{"safeway", receipt.CategoryGroceries},
	{"grocery", receipt.CategoryGroceries},
	{"market", receipt.CategoryGroceries},
	{"supermarket", receipt.CategoryGroceries},

	{"cvs", receipt.CategoryPharmacy},
	{"walgreens", receipt.CategoryPharmacy},
	{"rite aid", receipt.CategoryPharmacy},
	{"pharmacy", receipt.CategoryPharmacy},
	{"drug", receipt.CategoryPharmacy},
}

// itemKeywords mirrors the original CATEGORY_KEYWORDS dictionary.
var itemKeywords = map[receipt.Category][]string{
	receipt.CategoryGroceries: {
		"milk", "bread", "eggs", "cheese", "butter", "yogurt", "flour", "sugar",
		"rice", "pasta", "cereal", "fruit", "vegetable", "meat", "chicken", "beef",
		"pork", "fish", "salmon", "tuna", "apple", "banana", "orange", "tomato",
		"lettuce", "carrot", "potato", "onion", "garlic", "oil", "salt", "pepper",
	},
	receipt.CategoryRestaurant: {
		"burger", "fries", "pizza", "sandwich", "taco", "burrito", "salad",
		"sundae", "ice cream", "shake", "soda", "coffee", "tea", "latte",
		"cappuccino", "espresso", "mocha", "combo", "meal", "nuggets", "wings",
		"wrap", "sub", "hot dog", "nachos", "quesadilla", "smoothie", "juice",
		"caramel", "fudge", "chocolate", "vanilla", "strawberry",
	},
	receipt.CategoryPharmacy: {
		"medicine", "prescription", "tablet", "capsule", "syrup", "cream", "ointment",
		"bandage", "vitamin", "supplement", "aspirin", "ibuprofen", "antibiotic",
		"inhaler", "drops", "lotion", "sunscreen", "sanitizer", "mask", "thermometer",
	},
	receipt.CategoryRetail: {
		"shirt", "pants", "shoes", "socks", "jacket", "dress", "hat", "bag",
		"wallet", "belt", "watch", "glasses", "towel", "pillow", "blanket",
		"lamp", "candle", "book", "toy", "game", "electronics", "phone", "charger",
		"cable", "battery", "pen", "paper", "notebook", "folder",
	},
}

// Default is the stock categorizer the pipeline falls back to when the
// caller supplies none.
type Default struct{}

// Categorize implements receipt.Categorizer.
func (Default) Categorize(name, merchant string) receipt.Category {
	merchantLower := strings.ToLower(merchant)
	for _, hint := range merchantHints {
		if strings.Contains(merchantLower, hint.fragment) {
			return hint.category
		}
	}

	nameLower := strings.ToLower(name)
	for _, cat := range []receipt.Category{
		receipt.CategoryGroceries, receipt.CategoryRestaurant,
		receipt.CategoryPharmacy, receipt.CategoryRetail,
	} {
		for _, kw := range itemKeywords[cat] {
			if strings.Contains(nameLower, kw) {
				return cat
			}
		}
	}
	return receipt.CategoryOther
}
