package inputs

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"
)

var durationPattern = regexp2.MustCompile(`^(\d+(ms|[smhdw])\s*)+$`, regexp2.ECMAScript)

func checkEmail(text string) (string, bool) {
	addr, err := mail.ParseAddress(text)
	if err != nil || addr.Address != text {
		return "must be a valid email address", false
	}
	return "", true
}

func checkURL(text string) (string, bool) {
	u, err := url.ParseRequestURI(text)
	if err != nil || u.Host == "" {
		return "must be an absolute http(s) URL", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return "", true
	default:
		return "must be an absolute http(s) URL", false
	}
}

// checkDuration accepts compact durations such as `10m`, `1h30m` or `1d 2h`.
func checkDuration(text string) (string, bool) {
	ok, err := durationPattern.MatchString(text)
	if err != nil || !ok {
		return "must be a duration such as 1h30m", false
	}
	return "", true
}
