package challenge

import "github.com/carson-networks/insight-server/internal/finance"

// DefaultTemplates returns the built-in challenge catalog. Keys derived from
// kind and target category must stay unique so completed challenges can be
// excluded from future picks.
func DefaultTemplates() []finance.ChallengeTemplate {
	return []finance.ChallengeTemplate{
		{
			Kind:           finance.ChallengeCategory,
			Title:          "Coffee Breaker",
			Description:    "Spend 30% less on coffee this week",
			DurationDays:   7,
			TargetCategory: finance.CategoryCoffee,
			Badge: finance.Badge{
				ID:          "badge-coffee-breaker",
				Name:        "Coffee Breaker",
				Icon:        "☕",
				Description: "Held the coffee budget in check for a week",
				Category:    finance.CategoryCoffee,
			},
		},
		{
			Kind:           finance.ChallengeCategory,
			Title:          "Transport Ninja",
			Description:    "Cut transport costs by 30% this week",
			DurationDays:   7,
			TargetCategory: finance.CategoryTransport,
			Badge: finance.Badge{
				ID:          "badge-transport-ninja",
				Name:        "Transport Ninja",
				Icon:        "🚲",
				Description: "Moved around town for less",
				Category:    finance.CategoryTransport,
			},
		},
		{
			Kind:           finance.ChallengeCategory,
			Title:          "Home Chef",
			Description:    "Cook at home for five days in a row",
			DurationDays:   5,
			TargetCategory: finance.CategoryFood,
			Badge: finance.Badge{
				ID:          "badge-home-chef",
				Name:        "Home Chef",
				Icon:        "👨‍🍳",
				Description: "Five home-cooked days in a row",
				Category:    finance.CategoryFood,
			},
		},
		{
			Kind:           finance.ChallengeSpending,
			Title:          "Minimalist",
			Description:    "Spend 30% less than your daily average for a week",
			DurationDays:   7,
			TargetCategory: finance.CategoryGeneral,
			Badge: finance.Badge{
				ID:          "badge-minimalist",
				Name:        "Minimalist",
				Icon:        "✨",
				Description: "A week well below the usual pace",
				Category:    finance.CategoryGeneral,
			},
		},
		{
			Kind:           finance.ChallengeCategory,
			Title:          "Smart Shopper",
			Description:    "Cut impulse shopping by 30% this week",
			DurationDays:   7,
			TargetCategory: finance.CategoryShopping,
			Badge: finance.Badge{
				ID:          "badge-smart-shopper",
				Name:        "Smart Shopper",
				Icon:        "🛍️",
				Description: "Kept impulse buys under control",
				Category:    finance.CategoryShopping,
			},
		},
		{
			Kind:           finance.ChallengeSaving,
			Title:          "Saver",
			Description:    "Put something aside every day for two weeks",
			DurationDays:   14,
			TargetCategory: finance.CategoryGeneral,
			Badge: finance.Badge{
				ID:          "badge-saver",
				Name:        "Saver",
				Icon:        "💰",
				Description: "Fourteen days of steady saving",
				Category:    finance.CategoryGeneral,
			},
		},
	}
}
