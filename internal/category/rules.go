package category

import "github.com/smartexpense/expense-validator/internal/models"

// builtInRules are the fallback classification hints. They are merged
// into every dictionary without overwriting externally loaded entries,
// and evaluated in declaration order.
var builtInRules = []models.CategoryRule{
	{Keyword: "zomato", Category: "Food"},
	{Keyword: "swiggy", Category: "Food"},
	{Keyword: "uber", Category: "Travel"},
	{Keyword: "ola", Category: "Travel"},
	{Keyword: "amazon", Category: "Shopping"},
	{Keyword: "flipkart", Category: "Shopping"},
	{Keyword: "petrol", Category: "Fuel"},
	{Keyword: "fuel", Category: "Fuel"},
	{Keyword: "electricity", Category: "Bills"},
	{Keyword: "netflix", Category: "Entertainment"},
	{Keyword: "spotify", Category: "Entertainment"},
	{Keyword: "restaurant", Category: "Food"},
	{Keyword: "hotel", Category: "Travel"},
}
