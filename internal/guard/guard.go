// Package guard decides whether today's automatic post already exists.
package guard

import "blog_autopost/internal/domain"

// AlreadyPostedOn reports whether posts holds an automatically generated
// post dated day (YYYY-MM-DD). Hand-written posts for the same day do not count.
func AlreadyPostedOn(posts []domain.Post, day string) bool {
	for _, p := range posts {
		if p.AutoGenerated && p.Date == day {
			return true
		}
	}
	return false
}
