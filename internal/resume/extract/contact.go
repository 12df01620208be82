package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/publicsuffix"
)

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z_0-9.\-+]+@[a-z0-9.\-+]+\.[a-z]+`)
	phoneRe    = regexp.MustCompile(`[+(]?[1-9][0-9.\-()]{8,}[0-9]`)
	linkedInRe = regexp.MustCompile(`(?:\w+\.)?linkedin\.com/(?:pub|in|profile)/[-a-zA-Z0-9]+/*`)
	githubRe   = regexp.MustCompile(`(?:https?://)?github\.com/([^\s^/]+)`)
	urlRe      = regexp.MustCompile(`(?i)\b(?:https?://)?(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,63}(?::\d{1,5})?(?:/[^\s<>"'()]*)?`)
)

const maxPhoneLength = 16

// TLDs that are also common source file extensions. A bare token such as
// "train.py" is treated as a file name, not a host.
var fileExtensionTLDs = map[string]bool{
	"py": true,
	"sh": true,
	"md": true,
	"rs": true,
	"pl": true,
}

// Emails returns every distinct email address, sorted
func Emails(text string) []string {
	return uniqueSorted(emailRe.FindAllString(text, -1))
}

// Phone returns the first phone-like sequence, or "" when there is none
// or it is longer than a phone number can be.
func Phone(text string) string {
	m := phoneRe.FindString(text)
	if m == "" || len(m) > maxPhoneLength {
		return ""
	}
	return m
}

// NormalizePhone formats phone as E.164 using region for numbers without
// a country code. It returns "" when the number is not valid.
func NormalizePhone(phone, region string) string {
	if phone == "" {
		return ""
	}
	num, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// LinkedIn returns the first LinkedIn profile URL
func LinkedIn(text string) string {
	return linkedInRe.FindString(text)
}

// GitHub returns the username of the first GitHub profile link
func GitHub(text string) string {
	m := githubRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// URLs returns web addresses in order of first appearance. Hosts must end in
// an ICANN public suffix; email domains and dotted abbreviations are skipped.
func URLs(text string) []string {
	emailSpans := emailRe.FindAllStringIndex(text, -1)
	seen := make(map[string]bool)
	urls := []string{}

	for _, loc := range urlRe.FindAllStringIndex(text, -1) {
		if overlaps(loc, emailSpans) {
			continue
		}
		if loc[0] > 0 && strings.ContainsRune("@.", rune(text[loc[0]-1])) {
			continue
		}

		candidate := strings.TrimRight(text[loc[0]:loc[1]], ".,;:!?]}")
		if !isWebAddress(candidate) || seen[candidate] {
			continue
		}
		seen[candidate] = true
		urls = append(urls, candidate)
	}

	return urls
}

func isWebAddress(candidate string) bool {
	raw := candidate
	hasScheme := strings.Contains(raw, "://")
	if !hasScheme {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())

	suffix, icann := publicsuffix.PublicSuffix(host)
	if !icann || suffix == host {
		return false
	}

	// Bare tokens such as "B.Tech" or "node.js" read as abbreviations and file names
	if !hasScheme && !strings.HasPrefix(host, "www.") && (u.Path == "" || u.Path == "/") {
		registrable := strings.TrimSuffix(host, "."+suffix)
		labels := strings.Split(registrable, ".")
		if len(labels[len(labels)-1]) < 2 || fileExtensionTLDs[suffix] {
			return false
		}
	}

	return true
}

func overlaps(loc []int, spans [][]int) bool {
	for _, s := range spans {
		if loc[0] < s[1] && s[0] < loc[1] {
			return true
		}
	}
	return false
}
