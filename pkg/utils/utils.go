package utils

import (
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize title-cases a display name for listing output.
func Capitalize(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// Truncate shortens a display string to at most n characters, counting
// runes so a multibyte name is never cut mid-sequence.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

// DebugRoundTripper dumps every request and response at debug level.
func DebugRoundTripper() http.RoundTripper {
	return DebugRoundTripperWithUnderlying(http.DefaultTransport)
}

func DebugRoundTripperWithUnderlying(u http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		d, _ := httputil.DumpRequest(r, true)
		log.Debug().Msg(string(d))
		res, err := u.RoundTrip(r)
		if err == nil {
			d, _ = httputil.DumpResponse(res, true)
			log.Debug().Msg(string(d))
		}
		return res, err
	})
}
