package core

// billsCategories are fixed monthly bills. Expenses in these categories are
// left out of ExpensesWithoutBills.
var billsCategories = map[string]struct{}{
	"Rent":             {},
	"Electricity":      {},
	"Heating":          {},
	"Water":            {},
	"Phone+Internet":   {},
	"Phone + Internet": {},
	"Building Fees":    {},
	"Taxes":            {},
	"Energy":           {},
}

// IsBill reports whether category is one of the fixed bills. The match is
// exact and case-sensitive.
func IsBill(category string) bool {
	_, ok := billsCategories[category]
	return ok
}

// BillsCategories returns the bill labels in display order.
func BillsCategories() []string {
	return []string{"Rent", "Electricity", "Heating", "Water", "Phone+Internet", "Building Fees", "Taxes", "Energy"}
}
