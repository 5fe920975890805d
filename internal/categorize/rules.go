package categorize

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/carson-networks/insight-server/internal/finance"
)

// Rule scores a description against one candidate category. Every keyword
// found as a substring adds Priority to the category's score.
type Rule struct {
	Category finance.Category
	Keywords []string
	Priority int
}

// DefaultRules returns the built-in keyword rules. Rules are data, not code:
// deployments that need different merchants can replace them with a TOML file
// via LoadRulesFile.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: finance.CategoryCoffee,
			Keywords: []string{"starbucks", "coffee", "кофе", "coffeeshop", "кофейня", "cafe", "кафе"},
			Priority: 10,
		},
		{
			Category: finance.CategoryTransport,
			Keywords: []string{"taxi", "uber", "bolt", "яндекс.такси", "метро", "metro", "бензин", "gas", "автобус", "bus", "parking", "парковка"},
			Priority: 9,
		},
		{
			Category: finance.CategoryFood,
			Keywords: []string{"restaurant", "ресторан", "макдональдс", "kfc", "burger", "pizza", "пицца", "delivery", "доставка", "glovo", "wolt", "supermarket", "магазин", "grocery"},
			Priority: 8,
		},
		{
			Category: finance.CategorySubscriptions,
			Keywords: []string{"netflix", "spotify", "youtube", "premium", "subscription", "подписка", "apple music", "icloud"},
			Priority: 10,
		},
		{
			Category: finance.CategoryEntertainment,
			Keywords: []string{"cinema", "кино", "theater", "театр", "concert", "концерт", "game", "игра", "steam", "playstation"},
			Priority: 7,
		},
		{
			Category: finance.CategoryShopping,
			Keywords: []string{"amazon", "ozon", "wildberries", "kaspi", "market", "shop", "магазин", "store"},
			Priority: 6,
		},
		{
			Category: finance.CategoryUtilities,
			Keywords: []string{"electricity", "электричество", "water", "вода", "gas", "газ", "internet", "интернет", "mobile", "мобильная связь"},
			Priority: 9,
		},
		{
			Category: finance.CategoryHealthcare,
			Keywords: []string{"pharmacy", "аптека", "hospital", "больница", "doctor", "врач", "clinic", "клиника", "medical", "медицина"},
			Priority: 8,
		},
		{
			Category: finance.CategoryEducation,
			Keywords: []string{"course", "курс", "udemy", "coursera", "education", "образование", "book", "книга", "university", "университет"},
			Priority: 7,
		},
		{
			Category: finance.CategoryGifts,
			Keywords: []string{"gift", "подарок", "present", "flowers", "цветы"},
			Priority: 8,
		},
	}
}

type ruleFile struct {
	Rules []ruleEntry `toml:"rules"`
}

type ruleEntry struct {
	Category string   `toml:"category"`
	Keywords []string `toml:"keywords"`
	Priority int      `toml:"priority"`
}

// LoadRulesFile reads a full replacement rule set from a TOML file:
//
//	[[rules]]
//	category = "coffee"
//	keywords = ["starbucks", "coffee"]
//	priority = 10
func LoadRulesFile(path string) ([]Rule, error) {
	var file ruleFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, err
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	rules := make([]Rule, len(file.Rules))
	for i, entry := range file.Rules {
		category, err := finance.ParseCategory(entry.Category)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if len(entry.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, entry.Category)
		}
		if entry.Priority <= 0 {
			return nil, fmt.Errorf("rule %d (%s): priority must be positive", i, entry.Category)
		}
		rules[i] = Rule{
			Category: category,
			Keywords: entry.Keywords,
			Priority: entry.Priority,
		}
	}
	return rules, nil
}
