// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-portal/internal/i18n"
)

// I18nMiddleware picks the first supported language from Accept-Language.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := defaultLang

		// Handle cases like "fr-CA,fr;q=0.9,en;q=0.8"
		for _, candidate := range strings.Split(c.GetHeader("Accept-Language"), ",") {
			tag := strings.TrimSpace(strings.Split(candidate, ";")[0])
			if tag == "" {
				continue
			}
			if i18n.IsSupported(tag) {
				lang = strings.ToLower(strings.SplitN(tag, "-", 2)[0])
				break
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
