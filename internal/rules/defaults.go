package rules

import "github.com/cleared-dev/bastally/internal/model"

// DefaultVersion identifies the built-in rule table.
const DefaultVersion = "2025.1"

// Default returns the built-in rule table.
func Default() *RuleSet {
	return &RuleSet{
		Version: DefaultVersion,
		Sales:   []string{"STRIPE", "DEPOSIT", "CREDIT", "PTY LTD"},
		Transfers: []string{
			"INTERNAL", "LINKED",
		},
		GSTExpenses: []string{
			"FACEBOOK", "FACEBK", "GOOGLE", "DBRE", "DRE BRE", "WIX", "CURSOR", "MICROSOFT",
			"TRAINERIZE", "TPG", "MOBILE", "NETFLIX", "SPOTIFY", "AMAZON", "ADOBE",
			"MANYCHAT", "ZAPIER", "CANVA", "SQUASH", "UBER", "TAXI", "OFFICE", "POST",
			"LOCKSMITH", "IQUMULATE", "INSURANCE", "BIZCOVER", "NIB", "ORIGIN", "ENERGY", "FEES",
		},
		Exclude: []string{
			"INTERNAL", "TRANSFER", "IGA ", "WOOLWORTHS", "COLES", "GROCER", "ALDI",
			"LIQUOR", "CHEMIST", "PHARMACY", "DOCTOR", "DENTIST", "GYM", "FITNESS", "EMF",
			"BAYSIDE", "CHICKEN", "BURLEIGH", "ZAMBRERO", "MC DONALDS", "KFC",
			"REDY EXPRESS", "SHELL", "BP ", "7-ELEVEN", "AMPOL", "FUEL", "CAFE",
			"RESTAURANT", "BAR", "PUB", "EATS", "DELIV", "PERSONAL",
		},
		Categories: defaultCategories(),
		Policy: Policy{
			UnknownExpense: model.BucketNonGSTExpense,
		},
	}
}

func defaultCategories() []Category {
	return []Category{
		{Name: "Rent (Business Premises)", Keywords: []string{"DRE BRE", "DREBRE", "DBRE"}},
		{Name: "Marketing: Facebook Ads", Keywords: []string{"FACEBOOK", "META", "FACEBK", "FB.ME"}},
		{Name: "Software: ManyChat", Keywords: []string{"MANYCHAT"}},
		{Name: "Software: Zapier", Keywords: []string{"ZAPIER"}},
		{Name: "Software: Cursor AI", Keywords: []string{"CURSOR"}},
		{Name: "Software: ABC Trainerize", Keywords: []string{"TRAINERIZE"}},
		{Name: "Software: Wix", Keywords: []string{"WIX"}},
		{Name: "Software: Google", Keywords: []string{"GOOGLE"}},
		{Name: "Software: Microsoft", Keywords: []string{"MICROSOFT"}},
		{Name: "Software: Canva", Keywords: []string{"CANVA"}},
		{Name: "Software: AI Models", Keywords: []string{"OPENAI", "ANTHROPIC", "CLAUDE", "CHATGPT", "PERPLEXITY", "ELEVENLABS"}},
		{Name: "Software: Apple Services", Keywords: []string{"APPLE.COM/BILL", "ITUNES"}},
		{Name: "Software: Other PayPal Services", Keywords: []string{"PAYPAL"}},
		{Name: "Internet & Phone", Keywords: []string{"TPG", "VODAFONE", "FELIX", "EVERYDAY MOBILE"}},
		{Name: "Insurance", Keywords: []string{"BIZCOVER", "INSURANCE", "NIB", "RACQ", "IQUMULATE"}},
		{Name: "Bank Fees", Keywords: []string{"INTL TXN FEE", "FEES"}},
	}
}
