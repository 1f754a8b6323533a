package category

import (
	"math/rand/v2"
	"time"
)

const defaultEmoji = "📰"

// Category is a topical bucket driving both the news search and the illustration keyword.
type Category struct {
	Name          string
	Emoji         string
	Queries       []string
	ImageKeywords []string
}

// Rotation is the ordered set of categories cycled through day by day.
type Rotation []Category

// Default is the compiled-in rotation.
var Default = Rotation{
	{
		Name:          "IT",
		Emoji:         "💻",
		Queries:       []string{"IT 기술 트렌드", "소프트웨어 개발", "클라우드 컴퓨팅", "사이버보안", "스타트업 테크"},
		ImageKeywords: []string{"technology", "computer", "coding", "software", "digital"},
	},
	{
		Name:          "AI",
		Emoji:         "🤖",
		Queries:       []string{"인공지능 AI", "ChatGPT Claude", "생성형 AI", "머신러닝", "AI 서비스"},
		ImageKeywords: []string{"artificial intelligence", "robot", "machine learning", "futuristic", "neural network"},
	},
	{
		Name:          "교육",
		Emoji:         "📚",
		Queries:       []string{"에듀테크", "디지털 교육", "AI 교육", "미래 교육", "온라인 학습"},
		ImageKeywords: []string{"education", "learning", "classroom", "study", "books"},
	},
	{
		Name:          "경영",
		Emoji:         "💼",
		Queries:       []string{"경영 전략", "스타트업 창업", "리더십 경영", "MZ세대 조직문화", "디지털 트랜스포메이션"},
		ImageKeywords: []string{"business", "office", "leadership", "startup", "meeting"},
	},
}

// ForDay picks the category for an ordinal day of the year.
func (r Rotation) ForDay(dayOfYear int) Category {
	if len(r) == 0 {
		return Category{}
	}
	idx := dayOfYear % len(r)
	if idx < 0 {
		idx += len(r)
	}
	return r[idx]
}

// ForDate picks the category for the calendar date of t, in t's location.
func (r Rotation) ForDate(t time.Time) Category {
	return r.ForDay(t.YearDay())
}

// Lookup finds a category by name.
func (r Rotation) Lookup(name string) (Category, bool) {
	for _, c := range r {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// EmojiFor returns the emoji of the named category or the generic news emoji.
func (r Rotation) EmojiFor(name string) string {
	if c, ok := r.Lookup(name); ok && c.Emoji != "" {
		return c.Emoji
	}
	return defaultEmoji
}

// RandomQuery picks one of the category's search queries uniformly at random.
func (c Category) RandomQuery(rng *rand.Rand) string {
	return pick(rng, c.Queries)
}

// FallbackQuery is the query used when the random one yields nothing.
func (c Category) FallbackQuery() string {
	if len(c.Queries) == 0 {
		return ""
	}
	return c.Queries[0]
}

// RandomImageKeyword picks one of the category's image keywords uniformly at random.
func (c Category) RandomImageKeyword(rng *rand.Rand) string {
	if len(c.ImageKeywords) == 0 {
		return "technology"
	}
	return pick(rng, c.ImageKeywords)
}

func pick(rng *rand.Rand, values []string) string {
	if len(values) == 0 {
		return ""
	}
	if rng == nil {
		return values[rand.IntN(len(values))]
	}
	return values[rng.IntN(len(values))]
}
