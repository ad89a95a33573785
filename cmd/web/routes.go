package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/andrwlab/Season2App/internal/httputil"
	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/livequery"
	"github.com/andrwlab/Season2App/internal/middleware"
	"github.com/andrwlab/Season2App/internal/season"
	"github.com/andrwlab/Season2App/internal/service"
	"github.com/andrwlab/Season2App/internal/stats"
	"github.com/andrwlab/Season2App/internal/store"
	users "github.com/andrwlab/Season2App/internal/user"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth/gothic"
)

func newRouter(dbConn *sqlx.DB, sessionManager *scs.SessionManager, hub *livequery.Hub) http.Handler {
	r := chi.NewRouter()

	seasonStore := store.NewSeasonStore(dbConn)
	matchStore := store.NewMatchStore(dbConn)
	rosterStore := store.NewRosterStore(dbConn)
	userStore := store.NewUserStore(dbConn)
	selector := season.NewSelector(sessionManager, seasonStore)

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAuthenticatedUser(sessionManager, userStore))

	// Serve the SPA bundle
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	resolveSeason := func(r *http.Request) (string, error) {
		if id := r.URL.Query().Get("season"); id != "" {
			return id, nil
		}
		return selector.Resolve(r.Context(), middleware.GetAuthenticatedUser(r.Context()))
	}

	r.Get("/api/seasons", func(w http.ResponseWriter, r *http.Request) {
		seasons, err := seasonStore.ListSeasons(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list seasons", err)
			return
		}
		selected, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		activeID := ""
		if active := league.ActiveSeason(seasons); active != nil {
			activeID = active.ID
		}
		httputil.RenderJSON(w, map[string]any{
			"seasons":  seasons,
			"activeId": activeID,
			"selected": selected,
		})
	})

	r.Post("/api/seasons/select", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SeasonID string `json:"seasonId"`
		}
		if err := httputil.DecodeJSON(r, &body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		if err := selector.Select(r.Context(), body.SeasonID); err != nil {
			if errors.Is(err, season.ErrUnknownSeason) {
				httputil.BadRequest(w, "Unknown season", err)
				return
			}
			httputil.InternalServerError(w, "Failed to select season", err)
			return
		}
		// Non-admins snap back to the active season on the next read.
		selected, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		httputil.RenderJSON(w, map[string]any{"selected": selected})
	})

	r.Get("/api/teams", func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		teams, err := matchStore.ListTeams(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list teams", err)
			return
		}
		httputil.RenderJSON(w, teams)
	})

	r.Get("/api/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		team, err := matchStore.GetTeam(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Team not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get team", err)
			return
		}
		roster, err := rosterStore.GetRoster(r.Context(), league.RosterID(team.SeasonID, team.ID))
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httputil.InternalServerError(w, "Failed to get roster", err)
			return
		}
		httputil.RenderJSON(w, map[string]any{"team": team, "roster": roster})
	})

	r.Get("/api/schedule", func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		matches, err := matchStore.ListMatches(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list matches", err)
			return
		}
		httputil.RenderJSON(w, stats.SortedByStart(matches))
	})

	r.Get("/api/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(dbConn, matchStore, rosterStore)
		data, err := matchService.GetMatchViewData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Match not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get match data", err)
			return
		}
		httputil.RenderJSON(w, data)
	})

	r.Get("/api/standings", func(w http.ResponseWriter, r *http.Request) {
		statsService := service.NewStatsService(matchStore, rosterStore)
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		rows, err := statsService.GetStandings(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to compute standings", err)
			return
		}
		httputil.RenderJSON(w, rows)
	})

	r.Get("/api/players", func(w http.ResponseWriter, r *http.Request) {
		players, err := rosterStore.ListPlayers(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list players", err)
			return
		}
		httputil.RenderJSON(w, players)
	})

	r.Get("/api/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		player, err := rosterStore.GetPlayer(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Player not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get player", err)
			return
		}
		statRows, err := matchStore.ListStatsByPlayer(r.Context(), id)
		if err != nil {
			httputil.InternalServerError(w, "Failed to get player stats", err)
			return
		}
		httputil.RenderJSON(w, map[string]any{"player": player, "stats": statRows})
	})

	r.Get("/api/rosters", func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		rosters, err := rosterStore.ListRosters(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list rosters", err)
			return
		}
		httputil.RenderJSON(w, rosters)
	})

	r.Get("/api/trades", func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		trades, err := rosterStore.ListTrades(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list trades", err)
			return
		}
		httputil.RenderJSON(w, trades)
	})

	r.Get("/api/match-dates", func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		dates, err := seasonStore.ListMatchDates(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list match dates", err)
			return
		}
		httputil.RenderJSON(w, dates)
	})

	r.Get("/api/stats/players", func(w http.ResponseWriter, r *http.Request) {
		statsService := service.NewStatsService(matchStore, rosterStore)
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		rows, err := statsService.GetPlayerTotals(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to aggregate player stats", err)
			return
		}
		httputil.RenderJSON(w, rows)
	})

	r.Get("/api/stats/teams", func(w http.ResponseWriter, r *http.Request) {
		statsService := service.NewStatsService(matchStore, rosterStore)
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		rows, err := statsService.GetTeamTotals(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to aggregate team stats", err)
			return
		}
		httputil.RenderJSON(w, rows)
	})

	r.Get("/api/stats/leaders", func(w http.ResponseWriter, r *http.Request) {
		statsService := service.NewStatsService(matchStore, rosterStore)
		seasonID, err := resolveSeason(r)
		if err != nil {
			httputil.InternalServerError(w, "Failed to resolve season", err)
			return
		}
		rows, err := statsService.GetLeaders(r.Context(), seasonID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to compute leaders", err)
			return
		}
		httputil.RenderJSON(w, rows)
	})

	r.Get("/api/stats/cumulative", func(w http.ResponseWriter, r *http.Request) {
		statsService := service.NewStatsService(matchStore, rosterStore)
		rows, err := statsService.GetCumulativeTotals(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to aggregate cumulative stats", err)
			return
		}
		httputil.RenderJSON(w, rows)
	})

	r.Get("/api/stream", func(w http.ResponseWriter, r *http.Request) {
		streamFeeds(w, r, hub, resolveSeason, matchStore, rosterStore)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(users.RoleScorekeeper, users.RoleAdmin))

		r.Post("/api/matches/{id}/result", func(w http.ResponseWriter, r *http.Request) {
			matchService := service.NewMatchService(dbConn, matchStore, rosterStore)
			matchID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid match ID", err)
				return
			}
			var doc league.ResultDoc
			if err := httputil.DecodeJSON(r, &doc); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			match, err := matchStore.GetMatch(r.Context(), matchID.String())
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Match not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get match", err)
				return
			}
			if err := matchService.SubmitResult(r.Context(), matchID, doc); err != nil {
				if errors.Is(err, league.ErrMissingScores) {
					httputil.BadRequest(w, "Result is missing scores", err)
					return
				}
				httputil.InternalServerError(w, "Failed to submit result", err)
				return
			}
			invalidateSeason(r.Context(), hub, match.SeasonID)
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(users.RoleAdmin))

		r.Delete("/api/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
			matchService := service.NewMatchService(dbConn, matchStore, rosterStore)
			matchID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid match ID", err)
				return
			}
			match, err := matchStore.GetMatch(r.Context(), matchID.String())
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Match not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get match", err)
				return
			}
			if err := matchService.DeleteMatch(r.Context(), matchID); err != nil {
				httputil.InternalServerError(w, "Failed to delete match", err)
				return
			}
			invalidateSeason(r.Context(), hub, match.SeasonID)
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/api/rosters/move", func(w http.ResponseWriter, r *http.Request) {
			rosterService := service.NewRosterService(dbConn, rosterStore, matchStore)
			var body struct {
				SeasonID   string `json:"seasonId"`
				PlayerID   string `json:"playerId"`
				FromTeamID string `json:"fromTeamId"`
				ToTeamID   string `json:"toTeamId"`
				Note       string `json:"note"`
			}
			if err := httputil.DecodeJSON(r, &body); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if body.SeasonID == "" {
				seasonID, err := resolveSeason(r)
				if err != nil {
					httputil.InternalServerError(w, "Failed to resolve season", err)
					return
				}
				body.SeasonID = seasonID
			}
			if body.PlayerID == "" || body.FromTeamID == "" || body.ToTeamID == "" {
				httputil.BadRequest(w, "playerId, fromTeamId and toTeamId are required", nil)
				return
			}
			err := rosterService.MovePlayer(r.Context(), body.SeasonID, body.PlayerID, body.FromTeamID, body.ToTeamID, body.Note)
			if err != nil {
				if errors.Is(err, service.ErrSameTeam) {
					httputil.BadRequest(w, "Player is already on the destination team", err)
					return
				}
				httputil.InternalServerError(w, "Failed to move player", err)
				return
			}
			invalidateSeason(r.Context(), hub, body.SeasonID)
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Get("/api/me", func(w http.ResponseWriter, r *http.Request) {
		user := middleware.GetAuthenticatedUser(r.Context())
		if user == nil {
			httputil.RenderJSON(w, map[string]any{"authenticated": false})
			return
		}
		httputil.RenderJSON(w, map[string]any{
			"authenticated": true,
			"id":            user.ID,
			"email":         user.Email,
			"username":      user.Username,
			"role":          user.Role,
			"avatarUrl":     user.AvatarURL,
		})
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		userService := service.NewUserService(dbConn, userStore)
		user, err := userService.FindOrCreateUserByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create user", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())

		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessionManager.Destroy(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

// streamTopics are the feeds a client may subscribe to on /api/stream.
var streamTopics = map[string]bool{
	"schedule":     true,
	"standings":    true,
	"playerTotals": true,
	"teamTotals":   true,
	"leaders":      true,
	"rosters":      true,
}

func invalidateSeason(ctx context.Context, hub *livequery.Hub, seasonID string) {
	for topic := range streamTopics {
		hub.Invalidate(ctx, livequery.Key(topic, seasonID))
	}
}
