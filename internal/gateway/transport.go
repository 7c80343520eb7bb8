package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// authTransport attaches the current bearer token to every request bound
// for the API origin and force-expires the session on a 401 from it.
type authTransport struct {
	base   http.RoundTripper
	client *Client
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	own := t.client.sameOrigin(out.URL)
	out.Header.Del("Authorization")
	if own {
		token, err := t.client.creds.Token(ctx)
		if err != nil {
			t.client.log.Warn("credential lookup failed", "error", err)
		}
		if token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	rid := out.Header.Get(HeaderRequestID)
	if rid == "" {
		rid = uuid.NewString()
		out.Header.Set(HeaderRequestID, rid)
	}

	l := t.client.log.With(
		"method", out.Method,
		"url", out.URL.Path,
		"request_id", rid,
	)

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	dur := time.Since(start)

	switch {
	case err != nil:
		l.Error("request failed", "duration_ms", dur.Milliseconds(), "error", err)
		return nil, err
	case resp.StatusCode >= 500:
		l.Error("request completed", "status", resp.StatusCode, "duration_ms", dur.Milliseconds())
	case resp.StatusCode >= 400:
		l.Warn("request completed", "status", resp.StatusCode, "duration_ms", dur.Milliseconds())
	default:
		l.Info("request completed", "status", resp.StatusCode, "duration_ms", dur.Milliseconds())
	}

	if own && resp.StatusCode == http.StatusUnauthorized {
		t.client.expire(ctx, l)
	}
	return resp, nil
}
