package comlink

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/samvad-hq/swgoh-comlink-go/pkg/httpclient"
)

// GetUnitStats posts payload to the stats service. Requests are never signed
// and errors are returned exactly as the transport produced them; the stats
// service reports failures in its own shape.
func (c *Client) GetUnitStats(ctx context.Context, payload any, flags []string, lang string) (json.RawMessage, error) {
	body, err := marshalPayload(payload)
	if err != nil {
		return nil, err
	}

	req := &httpclient.Request{
		Method:     http.MethodPost,
		URL:        c.cfg.StatsURL + "/api" + statsQuery(flags, lang),
		Body:       body,
		Decompress: c.cfg.Compression,
	}
	c.log.DebugObj("comlink stats request", "comlink_request", map[string]any{
		"method": req.Method,
		"url":    req.URL,
	})
	return c.send(ctx, req)
}

// statsQuery renders the flags and language parameters verbatim.
func statsQuery(flags []string, lang string) string {
	var params string
	if len(flags) > 0 {
		params = "?flags=" + strings.Join(flags, ",")
	}
	if lang != "" {
		sep := "?"
		if params != "" {
			sep = "&"
		}
		params += sep + "language=" + lang
	}
	return params
}
