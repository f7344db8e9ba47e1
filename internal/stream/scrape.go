package stream

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleMarker is the page title served only to authenticated sessions.
const titleMarker = "Microsoft Stream"

// Both credentials are JSON string literals embedded in inline script data.
var (
	accessTokenRe = regexp.MustCompile(`"AccessToken":"(.+?)"`)
	apiGatewayRe  = regexp.MustCompile(`"ApiGatewayUri":"(.+?)"`)
)

// checkAuthenticated verifies that the fetched markup is the authenticated
// player page rather than the sign-in redirect shell.
func checkAuthenticated(page string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return fmt.Errorf("parsing video page: %w", err)
	}
	if strings.TrimSpace(doc.Find("title").First().Text()) != titleMarker {
		return ErrLoginRequired
	}
	return nil
}

// scrapeCredentials pulls the bearer token and API gateway URL out of the
// page markup.
func scrapeCredentials(page string) (token, apiBase string, err error) {
	m := accessTokenRe.FindStringSubmatch(page)
	if m == nil {
		return "", "", &MissingFieldError{Field: "access token"}
	}
	token = m[1]

	m = apiGatewayRe.FindStringSubmatch(page)
	if m == nil {
		return "", "", &MissingFieldError{Field: "API gateway URL"}
	}
	apiBase = m[1]

	return token, apiBase, nil
}
