package ranking

import (
	"slices"
	"strings"
	"unicode/utf8"

	"blog_autopost/internal/domain"
)

const (
	minTitleLength = 20
	maxTitleLength = 80

	lengthBonus = 10
	digitBonus  = 5
	quoteBonus  = 3
)

// Score rates how specific and newsworthy a headline looks.
func Score(item domain.NewsItem) int {
	score := 0
	length := utf8.RuneCountInString(item.Title)
	if length > minTitleLength && length < maxTitleLength {
		score += lengthBonus
	}
	if strings.ContainsAny(item.Title, "0123456789") {
		score += digitBonus
	}
	if strings.ContainsAny(item.Title, `"'`) {
		score += quoteBonus
	}
	return score
}

// Rank scores every item and orders them by descending score.
// Items with equal scores keep their original relative order.
func Rank(items []domain.NewsItem) []domain.ScoredNewsItem {
	scored := make([]domain.ScoredNewsItem, 0, len(items))
	for _, item := range items {
		scored = append(scored, domain.ScoredNewsItem{NewsItem: item, Score: Score(item)})
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredNewsItem) int {
		return b.Score - a.Score
	})
	return scored
}

// SelectBest returns the highest scoring item, preferring the earliest one on ties.
// The boolean is false when items is empty.
func SelectBest(items []domain.NewsItem) (domain.ScoredNewsItem, bool) {
	if len(items) == 0 {
		return domain.ScoredNewsItem{}, false
	}
	return Rank(items)[0], true
}
