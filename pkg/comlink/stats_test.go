package comlink

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samvad-hq/swgoh-comlink-go/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsQuery(t *testing.T) {
	cases := []struct {
		name  string
		flags []string
		lang  string
		want  string
	}{
		{name: "none", want: ""},
		{name: "flags", flags: []string{"calcGP", "gameStyle"}, want: "?flags=calcGP,gameStyle"},
		{name: "language", lang: "eng_us", want: "?language=eng_us"},
		{name: "empty flags language", flags: []string{}, lang: "eng_us", want: "?language=eng_us"},
		{name: "both", flags: []string{"calcGP", "gameStyle"}, lang: "eng_us", want: "?flags=calcGP,gameStyle&language=eng_us"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statsQuery(tc.flags, tc.lang))
		})
	}
}

func TestGetUnitStatsCallsStatsAPI(t *testing.T) {
	transport := &fakeTransport{body: `"Success!"`}
	c := newTestClient(t, transport, WithStatsURL("abc://xyz:42"), WithCredentials(testAccessKey, testSecretKey))

	raw, err := c.GetUnitStats(context.Background(), []map[string]string{{"foo": "bar"}}, []string{"onlyGP"}, "eng_us")
	require.NoError(t, err)
	assert.Equal(t, `"Success!"`, string(raw))

	req := transport.only(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "abc://xyz:42/api?flags=onlyGP&language=eng_us", req.URL)
	assert.Equal(t, `[{"foo":"bar"}]`, string(req.Body))
	assert.Empty(t, req.Headers)
	assert.True(t, req.Decompress)
}

func TestGetUnitStatsDoesNotNormalizeErrors(t *testing.T) {
	terr := &httpclient.Error{
		Message:    "response code 400 (Bad Request)",
		Code:       httpclient.CodeNon2xx,
		StatusCode: 400,
		Body:       []byte(`{"message":"bad roster","code":7}`),
	}
	c := newTestClient(t, &fakeTransport{err: terr})

	_, err := c.GetUnitStats(context.Background(), []any{}, nil, "")
	assert.Same(t, terr, err)

	var cerr *Error
	assert.False(t, errors.As(err, &cerr))
}

func TestGetUnitStatsAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "flags=calcGP,gameStyle&language=eng_us", r.URL.RawQuery)
		assert.Empty(t, r.Header.Get(HeaderAuthorization))
		assert.Equal(t, "identity", r.Header.Get("Accept-Encoding"))
		_, _ = w.Write([]byte(`[{"gp":1234}]`))
	}))
	defer srv.Close()

	c, err := New(WithStatsURL(srv.URL), WithCredentials(testAccessKey, testSecretKey), WithCompression(false))
	require.NoError(t, err)

	raw, err := c.GetUnitStats(context.Background(), []any{}, []string{"calcGP", "gameStyle"}, "eng_us")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"gp":1234}]`, string(raw))
}
