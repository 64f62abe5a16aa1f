package testhelpers

import (
	"net/http"
	"regexp"

	"github.com/jarcoal/httpmock"
)

// SetupHTTPMock initializes httpmock, activates it, and returns a cleanup function.
func SetupHTTPMock() func() {
	httpmock.Activate()
	return func() {
		httpmock.DeactivateAndReset()
	}
}

// SetupHTTPMockForClient initializes httpmock for a custom http.Client and returns a cleanup function.
func SetupHTTPMockForClient(client *http.Client) func() {
	httpmock.ActivateNonDefault(client)
	return func() {
		httpmock.DeactivateAndReset()
	}
}

// MockRemoteFile registers a GET responder serving body for any host at path.
// HEAD requests are answered too since go-getter sends one before downloading.
func MockRemoteFile(path, body string) {
	pattern := regexp.MustCompile(`^https?://[^/]+` + regexp.QuoteMeta(path) + `$`)
	responder := httpmock.ResponderFromResponse(&http.Response{
		Status:        http.StatusText(http.StatusOK),
		StatusCode:    http.StatusOK,
		Header:        http.Header{"Content-Type": []string{"text/plain"}},
		ContentLength: int64(len(body)),
		Body:          httpmock.NewRespBodyFromString(body),
	})
	httpmock.RegisterRegexpResponder(http.MethodGet, pattern, responder)
	httpmock.RegisterRegexpResponder(http.MethodHead, pattern, httpmock.NewStringResponder(http.StatusOK, ""))
}

// MockRemoteFileError registers a GET responder answering path with statusCode.
func MockRemoteFileError(path string, statusCode int) {
	pattern := regexp.MustCompile(`^https?://[^/]+` + regexp.QuoteMeta(path) + `$`)
	responder := httpmock.NewStringResponder(statusCode, http.StatusText(statusCode))
	httpmock.RegisterRegexpResponder(http.MethodGet, pattern, responder)
	httpmock.RegisterRegexpResponder(http.MethodHead, pattern, responder)
}
