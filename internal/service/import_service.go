package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ImportService backs the one-off administrative tools: roster sync,
// season seeding and the legacy totals backfill. Writes follow the
// original scripts' at-least-once contract: independent upserts that
// are safe to re-run, with delete batches capped at pruneBatchSize.
type ImportService struct {
	db      *sqlx.DB
	seasons *store.SeasonStore
	matches *store.MatchStore
	rosters *store.RosterStore
}

const pruneBatchSize = 400

// Namespace for deterministic ids of tool-created matches, so a
// re-run upserts instead of duplicating.
var seedNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func NewImportService(db *sqlx.DB, seasons *store.SeasonStore, matches *store.MatchStore, rosters *store.RosterStore) *ImportService {
	return &ImportService{db: db, seasons: seasons, matches: matches, rosters: rosters}
}

type RosterSyncReport struct {
	PlayersCreated  int
	RostersUpserted int
	StatsPruned     int
}

// SyncRosters upserts one roster per team from a teamID -> player
// display names mapping, creating missing players keyed by normalized
// name. When prune is set, stat rows for the season whose player is no
// longer on any roster are deleted in batches.
func (s *ImportService) SyncRosters(ctx context.Context, seasonID string, input map[string][]string, prune bool) (*RosterSyncReport, error) {
	if len(input) == 0 {
		return nil, errors.New("roster input is empty")
	}

	var missing []string
	for teamID := range input {
		if _, err := s.matches.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				missing = append(missing, teamID)
				continue
			}
			return nil, err
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing team docs: %s", strings.Join(missing, ", "))
	}

	players, err := s.rosters.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	playerByKey := make(map[string]league.Player, len(players))
	for _, p := range players {
		playerByKey[p.NameKey] = p
	}

	report := &RosterSyncReport{}
	allowed := make(map[string]struct{})

	teamIDs := make([]string, 0, len(input))
	for teamID := range input {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	for _, teamID := range teamIDs {
		var playerIDs []string
		seen := make(map[string]struct{})

		for _, rawName := range input[teamID] {
			key := league.NameKey(rawName)
			if key == "" {
				continue
			}
			player, ok := playerByKey[key]
			if !ok {
				player = league.Player{
					ID:       uuid.NewString(),
					FullName: league.NormalizeName(rawName),
					NameKey:  key,
					Type:     league.DetectPlayerType(rawName),
				}
				if err := s.rosters.CreatePlayer(ctx, &player); err != nil {
					return nil, fmt.Errorf("failed to create player %q: %w", rawName, err)
				}
				playerByKey[key] = player
				report.PlayersCreated++
			}
			if _, dup := seen[player.ID]; dup {
				continue
			}
			seen[player.ID] = struct{}{}
			playerIDs = append(playerIDs, player.ID)
			allowed[player.ID] = struct{}{}
		}

		if err := s.upsertRoster(ctx, &league.Roster{
			ID:        league.RosterID(seasonID, teamID),
			SeasonID:  seasonID,
			TeamID:    teamID,
			PlayerIDs: playerIDs,
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert roster %s: %w", teamID, err)
		}
		report.RostersUpserted++
	}

	if prune {
		pruned, err := s.pruneSeasonStats(ctx, seasonID, allowed)
		if err != nil {
			return nil, err
		}
		report.StatsPruned = pruned
	}

	return report, nil
}

func (s *ImportService) upsertRoster(ctx context.Context, roster *league.Roster) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := s.rosters.UpsertRosterTx(ctx, tx, roster); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *ImportService) pruneSeasonStats(ctx context.Context, seasonID string, allowed map[string]struct{}) (int, error) {
	rows, err := s.matches.ListStatsBySeason(ctx, seasonID)
	if err != nil {
		return 0, err
	}
	var toDelete []string
	for _, row := range rows {
		if _, ok := allowed[row.PlayerID]; !ok {
			toDelete = append(toDelete, row.ID.String())
		}
	}

	deleted := 0
	for start := 0; start < len(toDelete); start += pruneBatchSize {
		end := start + pruneBatchSize
		if end > len(toDelete) {
			end = len(toDelete)
		}
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return deleted, err
		}
		if err := s.matches.DeleteStatsByIDsTx(ctx, tx, toDelete[start:end]); err != nil {
			tx.Rollback()
			return deleted, err
		}
		if err := tx.Commit(); err != nil {
			return deleted, err
		}
		deleted += end - start
	}
	return deleted, nil
}

type SeedTeam struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LogoFile *string `json:"logoFile,omitempty"`
}

type ScheduleSlot struct {
	Time string `json:"time"`
	Home string `json:"home"`
	Away string `json:"away"`
}

type ScheduleDay struct {
	DateISO string         `json:"dateISO"`
	Matches []ScheduleSlot `json:"matches"`
}

type SchedulePayload struct {
	Dates []ScheduleDay `json:"dates"`
}

type SeedReport struct {
	TeamsUpserted  int
	MatchesCreated int
}

// SeedSeason ensures the season and team documents exist and creates
// scheduled matches from the schedule payload. Match ids derive from
// their slot, so re-running never duplicates and never clobbers a
// result recorded since.
func (s *ImportService) SeedSeason(ctx context.Context, season league.Season, teams []SeedTeam, schedule SchedulePayload) (*SeedReport, error) {
	if len(schedule.Dates) == 0 {
		return nil, errors.New("schedule is empty")
	}

	if err := s.seasons.UpsertSeason(ctx, &season); err != nil {
		return nil, fmt.Errorf("failed to upsert season: %w", err)
	}

	report := &SeedReport{}
	for _, team := range teams {
		slug := team.ID
		if err := s.matches.UpsertTeam(ctx, &league.Team{
			ID:       team.ID,
			SeasonID: season.ID,
			Name:     team.Name,
			Slug:     slug,
			LogoFile: team.LogoFile,
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
		}
		report.TeamsUpserted++
	}

	for _, day := range schedule.Dates {
		if err := s.seasons.UpsertMatchDate(ctx, &league.MatchDate{
			ID:       season.ID + "_" + day.DateISO,
			SeasonID: season.ID,
			DateISO:  day.DateISO,
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert match date %s: %w", day.DateISO, err)
		}

		for _, slot := range day.Matches {
			slotKey := strings.Join([]string{season.ID, day.DateISO, slot.Time, slot.Home, slot.Away}, "|")
			hhmm := slot.Time
			created, err := s.matches.CreateMatch(ctx, &league.Match{
				ID:         uuid.NewSHA1(seedNamespace, []byte(slotKey)),
				SeasonID:   season.ID,
				DateISO:    day.DateISO,
				TimeHHMM:   &hhmm,
				HomeTeamID: slot.Home,
				AwayTeamID: slot.Away,
				Status:     league.MatchScheduled,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create match %s: %w", slotKey, err)
			}
			if created {
				report.MatchesCreated++
			}
		}
	}

	return report, nil
}

type LegacyPlayerTotal struct {
	Name    string `json:"name"`
	Team    string `json:"team"`
	Attack  int    `json:"attack"`
	Blocks  int    `json:"blocks"`
	Assists int    `json:"assists"`
	Service int    `json:"service"`
}

type LegacyImportReport struct {
	TeamsCreated   int
	PlayersMatched int
	PlayersCreated int
	StatRowsLoaded int
}

// ImportLegacyTotals backfills a prior season's final totals as real
// roster and stat rows under a season marked legacy-fixed, so the
// cumulative views need no special data source. Names are matched to
// live players via the normalized key; unmatched names get synthetic
// "legacy:" player ids. The stat rows hang off one carrier match per
// season (scheduled, no scores) because the original dataset has no
// per-match breakdown.
func (s *ImportService) ImportLegacyTotals(ctx context.Context, season league.Season, totals []LegacyPlayerTotal) (*LegacyImportReport, error) {
	if len(totals) == 0 {
		return nil, errors.New("legacy dataset is empty")
	}

	season.DataSource = league.SourceLegacyFixed
	if err := s.seasons.UpsertSeason(ctx, &season); err != nil {
		return nil, fmt.Errorf("failed to upsert season: %w", err)
	}

	report := &LegacyImportReport{}

	teamIDs := make([]string, 0)
	teamIDByName := make(map[string]string)
	for _, t := range totals {
		if _, ok := teamIDByName[t.Team]; ok {
			continue
		}
		id := Slugify(t.Team)
		teamIDByName[t.Team] = id
		teamIDs = append(teamIDs, id)
		if err := s.matches.UpsertTeam(ctx, &league.Team{
			ID:       id,
			SeasonID: season.ID,
			Name:     t.Team,
			Slug:     id,
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert team %q: %w", t.Team, err)
		}
		report.TeamsCreated++
	}
	if len(teamIDs) < 2 {
		return nil, errors.New("legacy dataset needs at least two teams")
	}

	players, err := s.rosters.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	idByKey := make(map[string]string, len(players))
	for _, p := range players {
		idByKey[p.NameKey] = p.ID
	}

	carrier := &league.Match{
		ID:         uuid.NewSHA1(seedNamespace, []byte("legacy|"+season.ID)),
		SeasonID:   season.ID,
		DateISO:    season.StartDate,
		HomeTeamID: teamIDs[0],
		AwayTeamID: teamIDs[1],
		Status:     league.MatchScheduled,
	}
	if _, err := s.matches.CreateMatch(ctx, carrier); err != nil {
		return nil, fmt.Errorf("failed to create carrier match: %w", err)
	}

	rosterPlayers := make(map[string][]string)
	rows := make([]league.PlayerStat, 0, len(totals))
	for _, t := range totals {
		key := league.NameKey(t.Name)
		playerID, ok := idByKey[key]
		if ok {
			report.PlayersMatched++
		} else {
			playerID = "legacy:" + key
			if err := s.rosters.UpsertPlayer(ctx, &league.Player{
				ID:       playerID,
				FullName: league.NormalizeName(t.Name),
				NameKey:  key,
				Type:     league.DetectPlayerType(t.Name),
			}); err != nil {
				return nil, fmt.Errorf("failed to create legacy player %q: %w", t.Name, err)
			}
			idByKey[key] = playerID
			report.PlayersCreated++
		}

		teamID := teamIDByName[t.Team]
		rosterPlayers[teamID] = append(rosterPlayers[teamID], playerID)
		rows = append(rows, league.PlayerStat{
			ID:       uuid.New(),
			SeasonID: season.ID,
			MatchID:  carrier.ID,
			PlayerID: playerID,
			Attack:   t.Attack,
			Blocks:   t.Blocks,
			Assists:  t.Assists,
			Service:  t.Service,
		})
	}

	for teamID, ids := range rosterPlayers {
		if err := s.upsertRoster(ctx, &league.Roster{
			ID:        league.RosterID(season.ID, teamID),
			SeasonID:  season.ID,
			TeamID:    teamID,
			PlayerIDs: ids,
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert legacy roster %s: %w", teamID, err)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	if err := s.matches.DeleteStatsForMatchTx(ctx, tx, carrier.ID.String()); err != nil {
		return nil, err
	}
	if err := s.matches.InsertStatsTx(ctx, tx, rows); err != nil {
		return nil, fmt.Errorf("failed to insert legacy stat rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	report.StatRowsLoaded = len(rows)

	return report, nil
}

// Slugify lowers a display name into a url/id-safe token.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
