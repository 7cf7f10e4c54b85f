package stations

import (
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultTimeout bounds one directory request, retries excluded.
const DefaultTimeout = 20 * time.Second

const (
	dialTimeout     = 5 * time.Second
	idleConnTimeout = 90 * time.Second
	retryWaitMin    = 200 * time.Millisecond
	retryWaitMax    = 2 * time.Second
)

// newDirectoryTransport scales the connection phases to timeout so that a
// short request budget is not spent on a single slow phase.
func newDirectoryTransport(timeout time.Duration) *http.Transport {
	dial := min(dialTimeout, timeout/2)

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dial,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   dial,
		ResponseHeaderTimeout: timeout / 2,
		IdleConnTimeout:       idleConnTimeout,
		MaxIdleConnsPerHost:   2,
	}
}

// newDirectoryClient retries transport errors and 5xx answers up to retryMax
// times. 4xx answers reach the caller untouched.
func newDirectoryClient(timeout time.Duration, retryMax int) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = max(retryMax, 0)
	rc.RetryWaitMin = retryWaitMin
	rc.RetryWaitMax = retryWaitMax
	rc.Logger = nil
	rc.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: newDirectoryTransport(timeout),
	}

	return rc.StandardClient()
}
