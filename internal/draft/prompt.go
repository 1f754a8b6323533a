package draft

import (
	"fmt"
	"strings"
	"time"

	"blog_autopost/internal/domain"
)

const maxPromptContext = 5

// BuildPrompt renders the single-turn request sent to the text generation service.
func BuildPrompt(selected domain.NewsItem, news []domain.NewsItem, categoryName string, now time.Time) string {
	year := now.Year()
	today := fmt.Sprintf("%d년 %d월 %d일", year, int(now.Month()), now.Day())

	var related strings.Builder
	for i, item := range news {
		if i == maxPromptContext {
			break
		}
		if i > 0 {
			related.WriteString("\n")
		}
		fmt.Fprintf(&related, "%d. %s (%s)\n   %s", i+1, item.Title, item.Source, item.Link)
	}

	var sb strings.Builder
	sb.WriteString("당신은 IT/AI/교육 분야 전문 블로거입니다. 아래 뉴스를 바탕으로 독자들에게 유익한 블로그 포스트를 작성해주세요.\n\n")

	sb.WriteString("## 중요: 현재 날짜\n")
	fmt.Fprintf(&sb, "오늘은 %s입니다.\n", today)
	fmt.Fprintf(&sb, "반드시 %d년 현재 시점을 기준으로 작성하세요. %d년, %d년 등 과거 시제로 작성하지 마세요.\n\n", year, year-2, year-1)

	sb.WriteString("## 오늘의 주요 뉴스\n")
	fmt.Fprintf(&sb, "제목: %s\n", selected.Title)
	fmt.Fprintf(&sb, "출처: %s\n", selected.Source)
	fmt.Fprintf(&sb, "링크: %s\n\n", selected.Link)

	sb.WriteString("## 관련 뉴스\n")
	sb.WriteString(related.String())
	sb.WriteString("\n\n")

	sb.WriteString("## 작성 요청사항\n")
	fmt.Fprintf(&sb, "1. 위 뉴스를 바탕으로 \"%s\" 카테고리에 맞는 블로그 포스트를 작성해주세요.\n", categoryName)
	sb.WriteString("2. 단순 뉴스 전달이 아닌, 독자에게 인사이트를 주는 분석 글로 작성해주세요.\n")
	fmt.Fprintf(&sb, "3. 반드시 %d년 현재 시점에서 작성하세요. \"%d년에는~\", \"작년에~\" 같은 과거 표현을 사용하지 마세요.\n", year, year-1)
	sb.WriteString("4. 다음 구조로 작성해주세요:\n")
	sb.WriteString("   - 도입부: 왜 이 주제가 중요한지\n")
	sb.WriteString("   - 본문: 핵심 내용 설명 및 분석\n")
	sb.WriteString("   - 시사점: 독자들이 알아야 할 점, 앞으로의 전망\n")
	sb.WriteString("5. 원문 뉴스 링크를 본문 중간이나 끝에 자연스럽게 포함해주세요.\n")
	sb.WriteString("6. 친근하지만 전문적인 문체로 작성해주세요.\n")
	sb.WriteString("7. HTML 형식으로 작성해주세요 (h2, h3, p, a, blockquote 태그 사용).\n")
	sb.WriteString("8. 전체 길이는 800~1200자 정도로 작성해주세요.\n\n")

	sb.WriteString("## 출력 형식\n")
	sb.WriteString("아래 JSON 형식으로만 출력하세요. 다른 설명은 하지 마세요.\n\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"title\": \"포스트 제목 (흥미롭고 클릭하고 싶은 제목)\",\n")
	sb.WriteString("  \"excerpt\": \"포스트 요약 (1~2문장)\",\n")
	sb.WriteString("  \"content\": \"<h2>...</h2><p>...</p>...\"\n")
	sb.WriteString("}")

	return sb.String()
}
