package models

// Expense categories
const (
	CategoryFood             = "Food"
	CategoryGroceries        = "Groceries"
	CategoryShopping         = "Shopping"
	CategoryTransport        = "Transport"
	CategoryEntertainment    = "Entertainment"
	CategoryUtilities        = "Utilities"
	CategoryHealthAndFitness = "Health and Fitness"
	CategoryHomeRentOrLoan   = "Home rent or loan"
	CategorySaving           = "Saving"
	CategoryChildEducation   = "Child Education"
	CategoryMedical          = "Medical"
	CategoryTransportation   = "Transportation"
	CategoryHousing          = "Housing"
	CategoryHealthcare       = "Healthcare"
	CategoryEducation        = "Education"
	CategoryInvestments      = "Investments"
	CategorySavings          = "Savings"
	CategoryGym              = "Gym"
	CategoryPersonal         = "Personal"
	CategoryOther            = "Other"

	DefaultExpenseCategory = CategoryOther
)

// Income sources
const (
	SourceSalary     = "Salary"
	SourceFreelance  = "Freelance"
	SourceBusiness   = "Business"
	SourceInvestment = "Investment"
	SourceGift       = "Gift"
	SourceOther      = "Other"

	DefaultIncomeSource = SourceSalary
)

// Recurring frequencies
const (
	FrequencyDaily   = "Daily"
	FrequencyWeekly  = "Weekly"
	FrequencyMonthly = "Monthly"
	FrequencyYearly  = "Yearly"
	FrequencyNone    = "None"
)

// AllExpenseCategories returns every valid expense category
func AllExpenseCategories() []string {
	return []string{
		CategoryFood,
		CategoryGroceries,
		CategoryShopping,
		CategoryTransport,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryHealthAndFitness,
		CategoryHomeRentOrLoan,
		CategorySaving,
		CategoryChildEducation,
		CategoryMedical,
		CategoryTransportation,
		CategoryHousing,
		CategoryHealthcare,
		CategoryEducation,
		CategoryInvestments,
		CategorySavings,
		CategoryGym,
		CategoryPersonal,
		CategoryOther,
	}
}

// AllIncomeSources returns every valid income source
func AllIncomeSources() []string {
	return []string{
		SourceSalary,
		SourceFreelance,
		SourceBusiness,
		SourceInvestment,
		SourceGift,
		SourceOther,
	}
}

// AllFrequencies returns every valid recurring frequency
func AllFrequencies() []string {
	return []string{
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyMonthly,
		FrequencyYearly,
		FrequencyNone,
	}
}

// IsValidExpenseCategory checks if a category string is valid
func IsValidExpenseCategory(category string) bool {
	return contains(AllExpenseCategories(), category)
}

// IsValidIncomeSource checks if a source string is valid
func IsValidIncomeSource(source string) bool {
	return contains(AllIncomeSources(), source)
}

// IsValidFrequency checks if a recurring frequency is valid
func IsValidFrequency(frequency string) bool {
	return contains(AllFrequencies(), frequency)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
