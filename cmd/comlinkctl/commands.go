package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/swgoh-comlink-go/pkg/comlink"
	"github.com/spf13/cobra"
)

type call func(ctx context.Context, client *comlink.Client, args []string) (json.RawMessage, error)

// run adapts a client call into a cobra RunE that prints the JSON result.
func (c *cli) run(fn call) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		raw, err := fn(cmd.Context(), c.client, args)
		if err != nil {
			return err
		}
		return printJSON(c.out, raw)
	}
}

func addCommands(root *cobra.Command, c *cli) {
	root.AddCommand(&cobra.Command{
		Use:   "metadata",
		Short: "Fetch current game data and localization versions",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, client *comlink.Client, _ []string) (json.RawMessage, error) {
			return client.GetMetaData(ctx)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "enums",
		Short: "Fetch the enum catalog",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, client *comlink.Client, _ []string) (json.RawMessage, error) {
			return client.GetEnums(ctx)
		}),
	})

	var playerID string
	playerCmd := &cobra.Command{
		Use:   "player [ALLY_CODE]",
		Short: "Fetch a player profile by ally code or --id",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(ctx context.Context, client *comlink.Client, args []string) (json.RawMessage, error) {
			return client.GetPlayer(ctx, firstArg(args), playerID)
		}),
	}
	playerCmd.Flags().StringVar(&playerID, "id", "", "player id")
	root.AddCommand(playerCmd)

	var arenaID string
	var detailsOnly bool
	arenaCmd := &cobra.Command{
		Use:   "arena [ALLY_CODE]",
		Short: "Fetch a player's arena profile by ally code or --id",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(ctx context.Context, client *comlink.Client, args []string) (json.RawMessage, error) {
			return client.GetPlayerArenaProfile(ctx, firstArg(args), arenaID, detailsOnly)
		}),
	}
	arenaCmd.Flags().StringVar(&arenaID, "id", "", "player id")
	arenaCmd.Flags().BoolVar(&detailsOnly, "details-only", false, "return player details without squads")
	root.AddCommand(arenaCmd)

	var recentActivity, guildEnums bool
	guildCmd := &cobra.Command{
		Use:   "guild GUILD_ID",
		Short: "Fetch a guild profile",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, client *comlink.Client, args []string) (json.RawMessage, error) {
			return client.GetGuild(ctx, args[0], recentActivity, guildEnums)
		}),
	}
	guildCmd.Flags().BoolVar(&recentActivity, "recent-activity", false, "include recent guild activity")
	guildCmd.Flags().BoolVar(&guildEnums, "enums", false, "render enum values as names")
	root.AddCommand(guildCmd)

	var (
		guildName            string
		criteria             comlink.GuildSearchCriteria
		searchStart, searchN int
		searchEnums          bool
	)
	guildsCmd := &cobra.Command{
		Use:   "guilds",
		Short: "Search guilds by --name or by criteria",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, client *comlink.Client, _ []string) (json.RawMessage, error) {
			if guildName != "" {
				return client.GetGuildsByName(ctx, guildName, searchStart, searchN, searchEnums)
			}
			return client.GetGuildsByCriteria(ctx, criteria, searchStart, searchN, searchEnums)
		}),
	}
	gf := guildsCmd.Flags()
	gf.StringVar(&guildName, "name", "", "guild name to search for")
	gf.IntVar(&criteria.MinMemberCount, "min-members", 0, "minimum member count")
	gf.IntVar(&criteria.MaxMemberCount, "max-members", 0, "maximum member count")
	gf.BoolVar(&criteria.IncludeInviteOnly, "invite-only", false, "include invite-only guilds")
	gf.Int64Var(&criteria.MinGuildGalacticPower, "min-gp", 0, "minimum guild galactic power")
	gf.Int64Var(&criteria.MaxGuildGalacticPower, "max-gp", 0, "maximum guild galactic power")
	gf.StringSliceVar(&criteria.RecentTbParticipatedIn, "recent-tb", nil, "territory battles recently participated in")
	gf.IntVar(&searchStart, "start", 0, "start index")
	gf.IntVar(&searchN, "count", 10, "number of results")
	gf.BoolVar(&searchEnums, "enums", false, "render enum values as names")
	root.AddCommand(guildsCmd)

	var (
		board      comlink.LeaderboardID
		boardCount int
		boardEnums bool
	)
	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Fetch a guild leaderboard",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, client *comlink.Client, _ []string) (json.RawMessage, error) {
			return client.GetGuildLeaderboard(ctx, []comlink.LeaderboardID{board}, boardCount, boardEnums)
		}),
	}
	lf := leaderboardCmd.Flags()
	lf.IntVar(&board.LeaderboardType, "type", 0, "leaderboard type")
	lf.StringVar(&board.DefID, "def-id", "", "event definition id")
	lf.IntVar(&board.MonthOffset, "month-offset", 0, "0 for the current month, 1 for the previous")
	lf.IntVar(&boardCount, "count", 200, "number of guilds")
	lf.BoolVar(&boardEnums, "enums", false, "render enum values as names")
	_ = leaderboardCmd.MarkFlagRequired("type")
	root.AddCommand(leaderboardCmd)

	var eventEnums bool
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch scheduled game events",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, client *comlink.Client, _ []string) (json.RawMessage, error) {
			return client.GetEvents(ctx, eventEnums)
		}),
	}
	eventsCmd.Flags().BoolVar(&eventEnums, "enums", false, "render enum values as names")
	root.AddCommand(eventsCmd)

	var unzip bool
	localizationCmd := &cobra.Command{
		Use:   "localization BUNDLE_ID",
		Short: "Fetch a localization bundle",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, client *comlink.Client, args []string) (json.RawMessage, error) {
			return client.GetLocalizationBundle(ctx, args[0], unzip)
		}),
	}
	localizationCmd.Flags().BoolVar(&unzip, "unzip", false, "return unzipped bundle contents")
	root.AddCommand(localizationCmd)

	var includePve bool
	var segment int
	dataCmd := &cobra.Command{
		Use:   "data VERSION",
		Short: "Fetch a game data segment",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, client *comlink.Client, args []string) (json.RawMessage, error) {
			return client.GetGameData(ctx, args[0], includePve, segment)
		}),
	}
	dataCmd.Flags().BoolVar(&includePve, "include-pve", false, "include PvE units")
	dataCmd.Flags().IntVar(&segment, "segment", 0, "request segment (0 for all)")
	root.AddCommand(dataCmd)

	var statFlags []string
	var lang string
	statsCmd := &cobra.Command{
		Use:   "unit-stats",
		Short: "Compute unit stats for a JSON payload read from stdin",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, client *comlink.Client, _ []string) (json.RawMessage, error) {
			payload, err := readPayload(c.in)
			if err != nil {
				return nil, err
			}
			return client.GetUnitStats(ctx, payload, statFlags, lang)
		}),
	}
	statsCmd.Flags().StringSliceVar(&statFlags, "flags", nil, "stat calculation flags, comma separated")
	statsCmd.Flags().StringVar(&lang, "lang", "", "localization language for stat names")
	root.AddCommand(statsCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

func readPayload(r io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("payload on stdin is not valid JSON")
	}
	return json.RawMessage(data), nil
}
