package comlink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostEndpointsBuildPayloads(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
		call func(context.Context, *Client) (json.RawMessage, error)
	}{
		{
			name: "GetGameData",
			path: "/data",
			body: `{"payload":{"version":"versionString","includePveUnits":false,"requestSegment":2}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetGameData(ctx, "versionString", false, 2)
			},
		},
		{
			name: "GetLocalizationBundle",
			path: "/localization",
			body: `{"unzip":false,"payload":{"id":"idString"}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetLocalizationBundle(ctx, "idString", false)
			},
		},
		{
			name: "GetLocalizationBundle unzip",
			path: "/localization",
			body: `{"unzip":true,"payload":{"id":"idString"}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetLocalizationBundle(ctx, "idString", true)
			},
		},
		{
			name: "GetEvents",
			path: "/getEvents",
			body: `{"payload":{},"enums":false}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetEvents(ctx, false)
			},
		},
		{
			name: "GetGuild",
			path: "/guild",
			body: `{"payload":{"guildId":"idString","includeRecentGuildActivityInfo":true},"enums":false}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetGuild(ctx, "idString", true, false)
			},
		},
		{
			name: "GetGuildsByName",
			path: "/getGuilds",
			body: `{"payload":{"filterType":4,"startIndex":1,"name":"name","count":5},"enums":false}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetGuildsByName(ctx, "name", 1, 5, false)
			},
		},
		{
			name: "GetGuildsByCriteria",
			path: "/getGuilds",
			body: `{"payload":{"filterType":5,"startIndex":1,"count":5,"searchCriteria":{"minMemberCount":40,"recentTbParticipatedIn":["t01D"]}},"enums":true}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetGuildsByCriteria(ctx, GuildSearchCriteria{MinMemberCount: 40, RecentTbParticipatedIn: []string{"t01D"}}, 1, 5, true)
			},
		},
		{
			name: "GetMetaData",
			path: "/metadata",
			body: `{}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetMetaData(ctx)
			},
		},
		{
			name: "GetPlayer by ally code",
			path: "/player",
			body: `{"payload":{"allyCode":"123456789"}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetPlayer(ctx, "123456789", "")
			},
		},
		{
			name: "GetPlayer by id",
			path: "/player",
			body: `{"payload":{"playerId":"aPlayerId"}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetPlayer(ctx, "", "aPlayerId")
			},
		},
		{
			name: "GetPlayerArenaProfile by ally code",
			path: "/playerArena",
			body: `{"payload":{"playerDetailsOnly":false,"allyCode":"123456789"}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetPlayerArenaProfile(ctx, "123456789", "", false)
			},
		},
		{
			name: "GetPlayerArenaProfile by id",
			path: "/playerArena",
			body: `{"payload":{"playerDetailsOnly":true,"playerId":"aPlayerId"}}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetPlayerArenaProfile(ctx, "", "aPlayerId", true)
			},
		},
		{
			name: "GetGuildLeaderboard",
			path: "/getGuildLeaderboard",
			body: `{"payload":{"leaderboardId":[{"leaderboardType":3,"monthOffset":0}],"count":10},"enums":false}`,
			call: func(ctx context.Context, c *Client) (json.RawMessage, error) {
				return c.GetGuildLeaderboard(ctx, []LeaderboardID{{LeaderboardType: 3}}, 10, false)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transport := &fakeTransport{body: `"Success!"`}
			c := newTestClient(t, transport, WithCredentials(testAccessKey, testSecretKey))

			raw, err := tc.call(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, `"Success!"`, string(raw))

			req := transport.only(t)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, DefaultURL+tc.path, req.URL)
			assert.Equal(t, tc.body, string(req.Body))
			assert.Equal(t,
				"HMAC-SHA256 Credential=my-access-key,Signature="+expectedSignature(testSecretKey, "1660422866714", "POST", tc.path, []byte(tc.body)),
				req.Headers[HeaderAuthorization])
		})

		t.Run(tc.name+" error", func(t *testing.T) {
			rpcErr := errors.New("D-:")
			c := newTestClient(t, &fakeTransport{err: rpcErr})

			_, err := tc.call(context.Background(), c)
			assert.Same(t, rpcErr, err)
		})
	}
}

func TestGetGuildLeaderboardNilIDs(t *testing.T) {
	transport := &fakeTransport{body: `{}`}
	c := newTestClient(t, transport)

	_, err := c.GetGuildLeaderboard(context.Background(), nil, 200, false)
	require.NoError(t, err)
	assert.Equal(t, `{"payload":{"leaderboardId":[],"count":200},"enums":false}`, string(transport.only(t).Body))
}

func TestPlayerEndpointsRequireIdentifier(t *testing.T) {
	transport := &fakeTransport{body: `{}`}
	c := newTestClient(t, transport)

	_, err := c.GetPlayer(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingIdentifier)
	_, err = c.GetPlayerArenaProfile(context.Background(), "", "", true)
	assert.ErrorIs(t, err, ErrMissingIdentifier)
	assert.Empty(t, transport.requests)
}

func TestDecodeMetadata(t *testing.T) {
	md, err := DecodeMetadata(json.RawMessage(`{"latestGamedataVersion":"0.30.1:abc","latestLocalizationBundleVersion":"loc-9","assetVersion":7}`))
	require.NoError(t, err)
	assert.Equal(t, "0.30.1:abc", md.LatestGamedataVersion)
	assert.Equal(t, "loc-9", md.LatestLocalizationBundleVersion)

	_, err = DecodeMetadata(json.RawMessage(`[]`))
	assert.Error(t, err)
}
