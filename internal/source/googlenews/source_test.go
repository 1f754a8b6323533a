package googlenews

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
  <title>"AI 교육" - Google 뉴스</title>
  <item>
    <title>AI 교육 플랫폼 2026년 확대 - 테스트일보</title>
    <link>https://news.example.com/articles/1</link>
    <pubDate>Sun, 18 Oct 2026 01:00:00 GMT</pubDate>
    <description>&lt;a href="https://news.example.com/articles/1"&gt;AI 교육 플랫폼 2026년 확대&lt;/a&gt;&amp;nbsp;&amp;nbsp;&lt;font color="#6f6f6f"&gt;테스트일보&lt;/font&gt;</description>
    <source url="https://news.example.com">테스트일보</source>
  </item>
  <item>
    <title></title>
    <link>https://news.example.com/articles/2</link>
  </item>
  <item>
    <title>  링크 없는 기사  </title>
  </item>
  <item>
    <title>  에듀테크 스타트업 투자 유치  </title>
    <link> https://news.example.com/articles/3 </link>
    <description>plain description</description>
  </item>
</channel>
</rss>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearch_ParsesFeed(t *testing.T) {
	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	src := New(Config{
		BaseURL:  server.URL + "/rss/search",
		Language: "ko",
		Region:   "KR",
		Edition:  "KR:ko",
	}, testLogger())

	items := src.Search(context.Background(), "AI 교육")
	require.Len(t, items, 2)

	assert.Equal(t, "AI 교육 플랫폼 2026년 확대 - 테스트일보", items[0].Title)
	assert.Equal(t, "https://news.example.com/articles/1", items[0].Link)
	assert.Equal(t, "Sun, 18 Oct 2026 01:00:00 GMT", items[0].PublishedAt)
	assert.Equal(t, "테스트일보", items[0].Source)
	assert.Equal(t, "AI 교육 플랫폼 2026년 확대 테스트일보", items[0].Description)

	assert.Equal(t, "에듀테크 스타트업 투자 유치", items[1].Title)
	assert.Equal(t, "https://news.example.com/articles/3", items[1].Link)
	assert.Equal(t, "", items[1].Source)
	assert.Equal(t, "plain description", items[1].Description)

	assert.Contains(t, gotQuery, "q=AI+%EA%B5%90%EC%9C%A1")
	assert.Contains(t, gotQuery, "hl=ko")
	assert.Contains(t, gotQuery, "gl=KR")
	assert.Contains(t, gotQuery, "ceid=KR%3Ako")
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestSearch_LimitsToFirstEntries(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`)
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "<item><title>기사 %d</title><link>https://n/%d</link></item>", i, i)
	}
	b.WriteString("</channel></rss>")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(b.String()))
	}))
	defer server.Close()

	items := New(Config{BaseURL: server.URL}, testLogger()).Search(context.Background(), "q")
	require.Len(t, items, DefaultMaxItems)
	assert.Equal(t, "기사 0", items[0].Title)
	assert.Equal(t, "기사 9", items[9].Title)
}

func TestSearch_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not a feed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html><body>blocked</body></html>"))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				_, _ = w.Write([]byte(sampleFeed))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			src := New(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, testLogger())
			assert.Empty(t, src.Search(context.Background(), "q"))
		})
	}
}

func TestSearch_UnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	assert.Empty(t, New(Config{BaseURL: url}, testLogger()).Search(context.Background(), "q"))
}
