package category

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDay_CyclesThroughRotation(t *testing.T) {
	assert.Equal(t, "IT", Default.ForDay(0).Name)
	assert.Equal(t, "AI", Default.ForDay(1).Name)
	assert.Equal(t, "교육", Default.ForDay(2).Name)
	assert.Equal(t, "경영", Default.ForDay(3).Name)
	assert.Equal(t, "IT", Default.ForDay(4).Name)
	assert.Equal(t, Default.ForDay(365).Name, Default.ForDay(1).Name)
}

func TestForDay_EmptyRotation(t *testing.T) {
	assert.Equal(t, Category{}, Rotation{}.ForDay(3))
}

func TestForDate_UsesLocalCalendarDay(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2026-01-02 00:30 in Seoul is still 2026-01-01 in UTC.
	instant := time.Date(2026, time.January, 2, 0, 30, 0, 0, seoul)

	assert.Equal(t, "교육", Default.ForDate(instant).Name)
	assert.Equal(t, "AI", Default.ForDate(instant.UTC()).Name)
}

func TestForDate_IsDeterministic(t *testing.T) {
	day := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "AI", Default.ForDate(day).Name)
	}
}

func TestRandomQuery_StaysWithinCategory(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, c := range Default {
		for i := 0; i < 20; i++ {
			assert.Contains(t, c.Queries, c.RandomQuery(rng))
			assert.Contains(t, c.ImageKeywords, c.RandomImageKeyword(rng))
		}
	}
}

func TestFallbackQuery_IsFirstQuery(t *testing.T) {
	assert.Equal(t, "IT 기술 트렌드", Default[0].FallbackQuery())
	assert.Equal(t, "", Category{}.FallbackQuery())
}

func TestEmojiFor(t *testing.T) {
	assert.Equal(t, "🤖", Default.EmojiFor("AI"))
	assert.Equal(t, "📰", Default.EmojiFor("스포츠"))
}
