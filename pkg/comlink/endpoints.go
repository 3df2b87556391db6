package comlink

import (
	"context"
	"encoding/json"
)

// Guild search filter types understood by /getGuilds.
const (
	guildFilterByName     = 4
	guildFilterByCriteria = 5
)

// envelope is the common request shape. Field order matters: it fixes the
// serialized bytes, and those bytes are what gets signed.
type envelope struct {
	Unzip   *bool `json:"unzip,omitempty"`
	Payload any   `json:"payload"`
	Enums   *bool `json:"enums,omitempty"`
}

type gameDataPayload struct {
	Version         string `json:"version"`
	IncludePveUnits bool   `json:"includePveUnits"`
	RequestSegment  int    `json:"requestSegment"`
}

type localizationPayload struct {
	ID string `json:"id"`
}

type playerPayload struct {
	PlayerDetailsOnly *bool  `json:"playerDetailsOnly,omitempty"`
	AllyCode          string `json:"allyCode,omitempty"`
	PlayerID          string `json:"playerId,omitempty"`
}

type guildPayload struct {
	GuildID                        string `json:"guildId"`
	IncludeRecentGuildActivityInfo bool   `json:"includeRecentGuildActivityInfo"`
}

type guildsByNamePayload struct {
	FilterType int    `json:"filterType"`
	StartIndex int    `json:"startIndex"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

type guildsByCriteriaPayload struct {
	FilterType     int                 `json:"filterType"`
	StartIndex     int                 `json:"startIndex"`
	Count          int                 `json:"count"`
	SearchCriteria GuildSearchCriteria `json:"searchCriteria"`
}

type leaderboardPayload struct {
	LeaderboardID []LeaderboardID `json:"leaderboardId"`
	Count         int             `json:"count"`
}

// GuildSearchCriteria filters /getGuilds by guild attributes. Zero fields are omitted.
type GuildSearchCriteria struct {
	MinMemberCount         int      `json:"minMemberCount,omitempty"`
	MaxMemberCount         int      `json:"maxMemberCount,omitempty"`
	IncludeInviteOnly      bool     `json:"includeInviteOnly,omitempty"`
	MinGuildGalacticPower  int64    `json:"minGuildGalacticPower,omitempty"`
	MaxGuildGalacticPower  int64    `json:"maxGuildGalacticPower,omitempty"`
	RecentTbParticipatedIn []string `json:"recentTbParticipatedIn,omitempty"`
}

// LeaderboardID selects one guild leaderboard.
type LeaderboardID struct {
	LeaderboardType int    `json:"leaderboardType"`
	DefID           string `json:"defId,omitempty"`
	MonthOffset     int    `json:"monthOffset"`
}

func boolPtr(b bool) *bool { return &b }

// GetEnums fetches the enum catalog. It is the only GET endpoint and is never signed.
func (c *Client) GetEnums(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/enums")
}

// GetMetaData fetches current game-data and localization versions.
func (c *Client) GetMetaData(ctx context.Context) (json.RawMessage, error) {
	return c.post(ctx, "/metadata", struct{}{})
}

// GetGameData fetches a game-data segment. Segment 0 returns everything;
// segments 1..n hold self-contained collections.
func (c *Client) GetGameData(ctx context.Context, version string, includePveUnits bool, requestSegment int) (json.RawMessage, error) {
	return c.post(ctx, "/data", envelope{
		Payload: gameDataPayload{
			Version:         version,
			IncludePveUnits: includePveUnits,
			RequestSegment:  requestSegment,
		},
	})
}

func (c *Client) GetLocalizationBundle(ctx context.Context, id string, unzip bool) (json.RawMessage, error) {
	return c.post(ctx, "/localization", envelope{
		Unzip:   boolPtr(unzip),
		Payload: localizationPayload{ID: id},
	})
}

// GetPlayer fetches a player profile by ally code, falling back to player id.
func (c *Client) GetPlayer(ctx context.Context, allyCode, playerID string) (json.RawMessage, error) {
	p, err := identify(playerPayload{}, allyCode, playerID)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, "/player", envelope{Payload: p})
}

// GetPlayerArenaProfile fetches arena data by ally code, falling back to player id.
func (c *Client) GetPlayerArenaProfile(ctx context.Context, allyCode, playerID string, detailsOnly bool) (json.RawMessage, error) {
	p, err := identify(playerPayload{PlayerDetailsOnly: boolPtr(detailsOnly)}, allyCode, playerID)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, "/playerArena", envelope{Payload: p})
}

func (c *Client) GetEvents(ctx context.Context, enums bool) (json.RawMessage, error) {
	return c.post(ctx, "/getEvents", envelope{
		Payload: struct{}{},
		Enums:   boolPtr(enums),
	})
}

func (c *Client) GetGuild(ctx context.Context, guildID string, includeRecentActivity, enums bool) (json.RawMessage, error) {
	return c.post(ctx, "/guild", envelope{
		Payload: guildPayload{
			GuildID:                        guildID,
			IncludeRecentGuildActivityInfo: includeRecentActivity,
		},
		Enums: boolPtr(enums),
	})
}

func (c *Client) GetGuildsByName(ctx context.Context, name string, startIndex, count int, enums bool) (json.RawMessage, error) {
	return c.post(ctx, "/getGuilds", envelope{
		Payload: guildsByNamePayload{
			FilterType: guildFilterByName,
			StartIndex: startIndex,
			Name:       name,
			Count:      count,
		},
		Enums: boolPtr(enums),
	})
}

func (c *Client) GetGuildsByCriteria(ctx context.Context, criteria GuildSearchCriteria, startIndex, count int, enums bool) (json.RawMessage, error) {
	return c.post(ctx, "/getGuilds", envelope{
		Payload: guildsByCriteriaPayload{
			FilterType:     guildFilterByCriteria,
			StartIndex:     startIndex,
			Count:          count,
			SearchCriteria: criteria,
		},
		Enums: boolPtr(enums),
	})
}

func (c *Client) GetGuildLeaderboard(ctx context.Context, ids []LeaderboardID, count int, enums bool) (json.RawMessage, error) {
	if ids == nil {
		ids = []LeaderboardID{}
	}
	return c.post(ctx, "/getGuildLeaderboard", envelope{
		Payload: leaderboardPayload{LeaderboardID: ids, Count: count},
		Enums:   boolPtr(enums),
	})
}

func identify(p playerPayload, allyCode, playerID string) (playerPayload, error) {
	switch {
	case allyCode != "":
		p.AllyCode = allyCode
	case playerID != "":
		p.PlayerID = playerID
	default:
		return p, ErrMissingIdentifier
	}
	return p, nil
}
