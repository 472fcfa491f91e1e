package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ConsentCookie is the consent-flag cookie set by the front end. Its value
// is a comma-separated list of accepted categories, e.g.
// "essential,functional".
const ConsentCookie = "cookie_consent"

const functionalCookieMaxAge = 180 * 24 * 60 * 60 // ~6 months, in seconds

// HasFunctionalConsent reports whether the request carries consent for
// functional (non-essential) cookies.
func HasFunctionalConsent(c *gin.Context) bool {
	consent, err := c.Cookie(ConsentCookie)
	if err != nil {
		return false
	}
	for _, category := range strings.Split(consent, ",") {
		if strings.TrimSpace(category) == "functional" {
			return true
		}
	}
	return false
}

// SetFunctionalCookie writes a long-lived functional cookie, but only when
// the request consented to the functional category. Essential cookies must
// not go through this gate.
func SetFunctionalCookie(c *gin.Context, name, value string) {
	if !HasFunctionalConsent(c) {
		return
	}
	c.SetCookie(name, value, functionalCookieMaxAge, "/", "", false, true)
}
