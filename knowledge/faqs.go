package knowledge

// FAQ is a canned question/answer pair. Tags drive keyword matching for
// free-form questions.
type FAQ struct {
	ID       string
	Question string
	Answer   string
	Tags     []string
}

var faqTable = []FAQ{
	{
		ID:       "q1",
		Question: "Is Jain food available?",
		Answer:   "Yes, we have Jain food available, though the variety is limited. Please inform the outlet team about your Jain food requirement when you arrive.",
		Tags:     []string{"menu", "jain food", "dietary"},
	},
	{
		ID:       "q2",
		Question: "Do you serve Halal food?",
		Answer:   "Yes, we serve Halal meat in all our outlets, and every outlet holds a Halal certificate.",
		Tags:     []string{"menu", "halal", "meat", "dietary"},
	},
	{
		ID:       "q3",
		Question: "Is outside alcohol allowed?",
		Answer:   "Outside drinks are not allowed. We serve drinks at the outlet as per the a la carte menu.",
		Tags:     []string{"drinks", "alcohol", "policy"},
	},
	{
		ID:       "q4",
		Question: "Is the menu the same at every outlet?",
		Answer:   "Yes, the menu is standard across all our branches.",
		Tags:     []string{"menu", "outlets"},
	},
	{
		ID:       "q5",
		Question: "What type of fish do you serve?",
		Answer:   "We serve BASA fish, which is boneless.",
		Tags:     []string{"menu", "fish", "seafood"},
	},
	{
		ID:       "q6",
		Question: "What ice cream flavours are available?",
		Answer:   "We serve two flavours of ice cream: vanilla and strawberry. Kulfi comes in six flavours including malai, kesar badam and mango.",
		Tags:     []string{"menu", "dessert", "ice cream", "kulfi"},
	},
	{
		ID:       "q7",
		Question: "Can I customize the menu?",
		Answer:   "Taste adjustments like more or less spice are always possible. Additional dishes beyond the buffet menu depend on branch availability.",
		Tags:     []string{"menu", "customization", "special request"},
	},
	{
		ID:       "q8",
		Question: "Do you serve biryani?",
		Answer:   "We serve chicken and veg biryani only.",
		Tags:     []string{"menu", "biryani", "rice"},
	},
	{
		ID:       "q9",
		Question: "Can I order only drinks?",
		Answer:   "Sorry, drinks cannot be served on their own without the buffet.",
		Tags:     []string{"drinks", "policy", "payment"},
	},
	{
		ID:       "q10",
		Question: "Is hookah available?",
		Answer:   "Sorry, hookah is not available at any of our outlets.",
		Tags:     []string{"hookah", "smoking", "policy"},
	},
}
