package auth

import (
	"net/http"
	"strings"
)

const contentTypeForm = "application/x-www-form-urlencoded"

// defaultHeaders is the header set the customer portal sends from a browser.
// The vendor endpoint rejects requests that look too little like it.
var defaultHeaders = [][2]string{
	{"accept", "application/json, text/plain, */*"},
	{"accept-language", "en-US,en;q=0.9"},
	{"authorization", "Bearer null"},
	{"content-type", contentTypeForm},
	{"origin", "https://customer.fmcglobalsat.com"},
	{"priority", "u=1, i"},
	{"referer", "https://customer.fmcglobalsat.com/"},
	{"sec-ch-ua", `"Chromium";v="142", "Google Chrome";v="142", "Not_A Brand";v="99"`},
	{"sec-ch-ua-mobile", "?0"},
	{"sec-ch-ua-platform", `"Windows"`},
	{"sec-fetch-dest", "empty"},
	{"sec-fetch-mode", "cors"},
	{"sec-fetch-site", "cross-site"},
	{"user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"},
}

// DefaultHeaders returns a fresh copy of the browser header set.
func DefaultHeaders() http.Header {
	h := make(http.Header, len(defaultHeaders))
	for _, kv := range defaultHeaders {
		h.Set(kv[0], kv[1])
	}
	return h
}

// BuildHeaders merges overrides into the defaults. An empty override value
// drops the header. Content-Type always stays form-encoded.
func BuildHeaders(overrides map[string]string) http.Header {
	h := DefaultHeaders()
	for k, v := range overrides {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if v == "" {
			h.Del(k)
			continue
		}
		h.Set(k, v)
	}
	h.Set("Content-Type", contentTypeForm)
	return h
}
