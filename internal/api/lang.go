package api

import (
	"net/http"
	"strings"

	"github.com/tourdrop/tourdrop/internal/fault"
)

// detectLanguage picks the message language for a request: the lang cookie
// wins, then the first supported tag in Accept-Language, then english.
func detectLanguage(r *http.Request) string {
	if c, err := r.Cookie("lang"); err == nil && supportedLang(c.Value) {
		return c.Value
	}
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if i := strings.IndexByte(tag, '-'); i >= 0 {
			tag = tag[:i]
		}
		tag = strings.ToLower(tag)
		if supportedLang(tag) {
			return tag
		}
	}
	return fault.DefaultLang
}

func supportedLang(lang string) bool {
	for _, l := range fault.Langs {
		if l == lang {
			return true
		}
	}
	return false
}
