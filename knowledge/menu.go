package knowledge

// MenuItem is one dish of the unlimited buffet.
type MenuItem struct {
	Name     string
	Category string
	Veg      bool
}

var menuTable = []MenuItem{
	// Veg starters
	{Name: "Grill Veg", Category: "starter", Veg: true},
	{Name: "Mushroom", Category: "starter", Veg: true},
	{Name: "Paneer", Category: "starter", Veg: true},
	{Name: "Veg Kebab", Category: "starter", Veg: true},
	{Name: "Cajun Spice Potato", Category: "starter", Veg: true},
	{Name: "Pineapple", Category: "starter", Veg: true},

	// Non-veg starters
	{Name: "Chicken Tangdi", Category: "starter"},
	{Name: "Chicken Skewer", Category: "starter"},
	{Name: "Mutton", Category: "starter"},
	{Name: "Fish", Category: "starter"},
	{Name: "Prawns", Category: "starter"},

	// Veg main course
	{Name: "Noodles", Category: "main", Veg: true},
	{Name: "Oriental Veg", Category: "main", Veg: true},
	{Name: "Paneer Butter Masala", Category: "main", Veg: true},
	{Name: "Aloo", Category: "main", Veg: true},
	{Name: "Veg Kofta", Category: "main", Veg: true},
	{Name: "Dal Tadka", Category: "main", Veg: true},
	{Name: "Dal Makhani", Category: "main", Veg: true},
	{Name: "Veg Biryani", Category: "main", Veg: true},
	{Name: "Rice", Category: "main", Veg: true},

	// Non-veg main course
	{Name: "Non Veg Biryani", Category: "main"},
	{Name: "Mutton Curry", Category: "main"},
	{Name: "Chicken Curry", Category: "main"},
	{Name: "Fish Gravy", Category: "main"},

	// Soups and salads
	{Name: "Veg Soup", Category: "soup", Veg: true},
	{Name: "Non Veg Soup", Category: "soup"},
	{Name: "Salad Veg", Category: "salad", Veg: true},
	{Name: "Salad Non Veg", Category: "salad"},

	// Desserts
	{Name: "Angori Gulab Jamun", Category: "dessert", Veg: true},
	{Name: "Phirnee", Category: "dessert", Veg: true},
	{Name: "Ice Cream", Category: "dessert", Veg: true},
	{Name: "Fruit Tart", Category: "dessert", Veg: true},
	{Name: "Pastry", Category: "dessert", Veg: true},
	{Name: "Brownie", Category: "dessert", Veg: true},
}
