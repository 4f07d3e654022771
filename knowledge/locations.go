package knowledge

// Location describes one outlet of the chain.
type Location struct {
	Key            string
	Name           string
	City           string
	Address        string
	Timings        []DayTimings
	Amenities      Amenities
	Offers         Offers
	NearestOutlets []Outlet
	ContactNumbers []string
}

// DayTimings carries lunch and dinner service hours for a range of days.
type DayTimings struct {
	Days   string
	Lunch  MealHours
	Dinner MealHours
}

// MealHours is one service window.
type MealHours struct {
	Opening   string
	LastEntry string
	Closing   string
}

// Amenities lists what the outlet offers on-site.
type Amenities struct {
	Bar          bool
	ValetParking string
	BabyChair    bool
	Lift         bool
}

// Offers flags the promotions currently running at an outlet.
type Offers struct {
	ComplimentaryDrinks string
	FoodFestival        bool
	EarlyBird           bool
	BuffetOffer         bool
	ArmyOffer           bool
	DrinksOffer         bool
}

// Outlet is a nearby sister branch, used for directions.
type Outlet struct {
	Name     string
	Address  string
	Distance string
}

var weekdayHours = []DayTimings{
	{
		Days:   "Monday to Friday",
		Lunch:  MealHours{Opening: "12:00 pm", LastEntry: "04:00 pm", Closing: "05:00 pm"},
		Dinner: MealHours{Opening: "06:30 pm", LastEntry: "11:00 pm", Closing: "11:55 pm"},
	},
	{
		Days:   "Saturday and Sunday",
		Lunch:  MealHours{Opening: "11:00 am", LastEntry: "04:00 pm", Closing: "05:00 pm"},
		Dinner: MealHours{Opening: "06:30 pm", LastEntry: "11:00 pm", Closing: "11:55 pm"},
	},
}

var locationTable = []Location{
	{
		Key:     "delhi-connaught-place",
		Name:    "Barbeque Junction - Connaught Place",
		City:    "Delhi",
		Address: "Munshilal Building 2nd Floor N-19, Block N, Connaught Place, New Delhi, Delhi 110001",
		Timings: weekdayHours,
		Amenities: Amenities{
			Bar:          true,
			ValetParking: "Available",
			BabyChair:    true,
			Lift:         true,
		},
		Offers: Offers{
			ComplimentaryDrinks: "Lunch / Monday to Saturday / 1 Round / Soft drink or Mocktail",
			EarlyBird:           true,
		},
		NearestOutlets: []Outlet{
			{Name: "Vasant Kunj", Address: "Pyramid Building, Pocket 7, Sector C, Vasant Kunj, New Delhi", Distance: "14.2 km"},
			{Name: "Unity Mall Janakpuri", Address: "Unity One, 2nd Floor, Janakpuri, New Delhi", Distance: "16.8 km"},
		},
		ContactNumbers: []string{"7042698057", "8130244992"},
	},
	{
		Key:     "delhi-vasant-kunj",
		Name:    "Barbeque Junction - Vasant Kunj",
		City:    "Delhi",
		Address: "Plot No. 11, Local Shopping Center, Pyramid Building, Pocket 7, Sector C, Vasant Kunj, New Delhi, Delhi 110070",
		Timings: weekdayHours,
		Amenities: Amenities{
			ValetParking: "Self / Chargeable",
			BabyChair:    true,
			Lift:         true,
		},
		Offers: Offers{
			ComplimentaryDrinks: "Lunch / Monday to Saturday / 1 Round / Soft drink or Mocktail",
			BuffetOffer:         true,
		},
		NearestOutlets: []Outlet{
			{Name: "Connaught Place", Address: "Munshilal Building, Block N, Connaught Place, New Delhi", Distance: "14.2 km"},
		},
		ContactNumbers: []string{"7042123456", "8130123456"},
	},
	{
		Key:     "bangalore-indiranagar",
		Name:    "Barbeque Junction - Indiranagar",
		City:    "Bangalore",
		Address: "No.4005, HAL 2nd Stage, 100 Feet Road, Indiranagar, Bangalore 560038",
		Timings: weekdayHours,
		Amenities: Amenities{
			Bar:          true,
			ValetParking: "Available",
			BabyChair:    true,
			Lift:         true,
		},
		Offers: Offers{
			ComplimentaryDrinks: "Lunch / Monday to Saturday / 1 Round / Soft drink or Mocktail",
		},
		NearestOutlets: []Outlet{
			{Name: "Lido Mall MG Road", Address: "1/4, Ground Floor, Lido Mall, Halasuru, Bengaluru 560008", Distance: "4.1 km"},
			{Name: "Koramangala 7th Block", Address: "118, 1st Floor, 80 Feet Rd, KHB Colony, Koramangala, Bengaluru", Distance: "5.8 km"},
		},
		ContactNumbers: []string{"8042698100"},
	},
	{
		Key:     "bangalore-electronic-city",
		Name:    "Barbeque Junction - Electronic City",
		City:    "Bangalore",
		Address: "99, 14th Cross Road, Neeladri Nagar, Electronic City Phase 1, Bengaluru, Karnataka 560100",
		Timings: weekdayHours,
		Amenities: Amenities{
			ValetParking: "Self / Chargeable",
			BabyChair:    true,
			Lift:         true,
		},
		Offers: Offers{
			ComplimentaryDrinks: "Lunch / Monday to Saturday / 1 Round / Soft drink or Mocktail",
			FoodFestival:        true,
		},
		NearestOutlets: []Outlet{
			{Name: "Koramangala 7th Block", Address: "118, 1st Floor, 80 Feet Rd, KHB Colony, Koramangala, Bengaluru", Distance: "15.3 km"},
		},
		ContactNumbers: []string{"8042698200"},
	},
}
