// Package cookies loads browser-exported session cookies in the Netscape
// cookies.txt format. Microsoft Stream pages are only readable with a live
// browser session, so the jar built here is the whole authentication story.
package cookies

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Netscape format: domain, include-subdomains flag, path, secure flag,
// expiry (unix seconds), name, value.
const numFields = 7

// LoadNetscape reads a cookies.txt file and returns a populated cookie jar.
func LoadNetscape(path string) (http.CookieJar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cookies file (export it from your browser with a cookies.txt extension): %w", err)
	}
	defer f.Close()

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	byHost := make(map[string][]*http.Cookie)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		cookie, host, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		byHost[host] = append(byHost[host], cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cookies file: %w", err)
	}

	for host, cs := range byHost {
		jar.SetCookies(&url.URL{Scheme: "https", Host: host}, cs)
	}

	return jar, nil
}

// parseLine parses one cookies.txt line. Malformed lines are skipped, not
// fatal, matching how browsers treat the format.
func parseLine(line string) (*http.Cookie, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, "", false
	}

	// HttpOnly cookies are exported with a commented domain prefix.
	httpOnly := false
	if strings.HasPrefix(line, "#HttpOnly_") {
		line = strings.TrimPrefix(line, "#HttpOnly_")
		httpOnly = true
	} else if strings.HasPrefix(line, "#") {
		return nil, "", false
	}

	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return nil, "", false
	}

	domain := fields[0]
	host := strings.TrimPrefix(domain, ".")
	if host == "" || fields[5] == "" {
		return nil, "", false
	}

	cookie := &http.Cookie{
		Name:     fields[5],
		Value:    fields[6],
		Path:     fields[2],
		Domain:   domain,
		Secure:   strings.EqualFold(fields[3], "TRUE"),
		HttpOnly: httpOnly,
	}

	if expiry, err := strconv.ParseInt(fields[4], 10, 64); err == nil && expiry > 0 {
		cookie.Expires = time.Unix(expiry, 0)
	}

	return cookie, host, true
}
