package draft

import (
	"fmt"
	"html"
	"strings"

	"blog_autopost/internal/category"
	"blog_autopost/internal/domain"
)

const (
	// Disclaimer closes every automatically written body.
	Disclaimer = `<p class="ai-disclaimer">🤖 <em>이 포스팅은 AI가 자동으로 작성한 포스팅입니다.</em></p>`

	excerptTitleRunes = 50
	maxRelated        = 3
	defaultEmoji      = "📰"
)

// Fallback builds a draft from the feed data alone. It performs no I/O and
// returns identical output for identical input.
func Fallback(selected domain.NewsItem, news []domain.NewsItem, cat category.Category) domain.DraftContent {
	return domain.DraftContent{
		Title:   FallbackTitle(selected, cat),
		Excerpt: FallbackExcerpt(selected, cat),
		Content: fallbackBody(selected, relatedItems(selected, news), cat.Name, emojiOf(cat)),
	}
}

func FallbackTitle(selected domain.NewsItem, cat category.Category) string {
	return emojiOf(cat) + " " + selected.Title
}

func FallbackExcerpt(selected domain.NewsItem, cat category.Category) string {
	return fmt.Sprintf("%s 분야 주요 소식: %s...", cat.Name, truncateRunes(selected.Title, excerptTitleRunes))
}

// relatedItems returns up to three items of news other than the selected one.
func relatedItems(selected domain.NewsItem, news []domain.NewsItem) []domain.NewsItem {
	out := make([]domain.NewsItem, 0, maxRelated)
	for _, item := range news {
		if len(out) == maxRelated {
			break
		}
		if item.Link == selected.Link && item.Title == selected.Title {
			continue
		}
		out = append(out, item)
	}
	return out
}

func fallbackBody(selected domain.NewsItem, related []domain.NewsItem, categoryName, emoji string) string {
	esc := html.EscapeString
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>%s %s</h2>\n\n", emoji, esc(selected.Title))
	fmt.Fprintf(&b, "<p>오늘 %s 분야에서 주목할 만한 소식이 있어 공유합니다.</p>\n\n", esc(categoryName))

	b.WriteString("<blockquote>\n")
	fmt.Fprintf(&b, "<strong>%s</strong>에서 보도한 내용에 따르면, 이 주제가 현재 업계에서 큰 관심을 받고 있습니다.\n", esc(selected.Source))
	b.WriteString("</blockquote>\n\n")

	b.WriteString("<h3>핵심 내용</h3>\n")
	b.WriteString("<p>자세한 내용은 아래 원문 기사를 통해 확인하실 수 있습니다.</p>\n")
	fmt.Fprintf(&b, "<p>👉 <a href=\"%s\" target=\"_blank\">원문 기사 보기</a></p>\n\n", esc(selected.Link))

	if len(related) > 0 {
		b.WriteString("<h3>관련 소식</h3>\n")
		b.WriteString("<p>이 주제와 관련된 다른 소식들도 함께 살펴보세요:</p>\n")
		b.WriteString("<ul>\n")
		for _, item := range related {
			fmt.Fprintf(&b, "<li><a href=\"%s\" target=\"_blank\">%s</a> <small>(%s)</small></li>\n",
				esc(item.Link), esc(item.Title), esc(item.Source))
		}
		b.WriteString("</ul>\n\n")
	}

	b.WriteString("<h3>마무리</h3>\n")
	fmt.Fprintf(&b, "<p>%s 분야의 변화는 우리 일상과 밀접하게 연결되어 있습니다. 앞으로도 관련 소식을 지속적으로 전해드리겠습니다.</p>\n\n", esc(categoryName))
	b.WriteString("<p><em>이 포스트는 자동으로 생성되었습니다. 더 자세한 내용은 원문 링크를 참고해주세요.</em></p>\n\n")
	b.WriteString(Disclaimer)

	return b.String()
}

func emojiOf(cat category.Category) string {
	if cat.Emoji == "" {
		return defaultEmoji
	}
	return cat.Emoji
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
