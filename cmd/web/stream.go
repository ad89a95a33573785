package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/andrwlab/Season2App/internal/httputil"
	"github.com/andrwlab/Season2App/internal/livequery"
	"github.com/andrwlab/Season2App/internal/service"
	"github.com/andrwlab/Season2App/internal/stats"
	"github.com/andrwlab/Season2App/internal/store"
)

type streamEvent struct {
	topic string
	data  any
}

// streamFeeds serves server-sent events for the requested topics,
// scoped to the caller's selected season. Each topic maps onto one
// shared hub feed, so a hundred open tabs cost one query per change.
func streamFeeds(
	w http.ResponseWriter,
	r *http.Request,
	hub *livequery.Hub,
	resolveSeason func(*http.Request) (string, error),
	matchStore *store.MatchStore,
	rosterStore *store.RosterStore,
) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.InternalServerError(w, "Streaming unsupported", nil)
		return
	}

	seasonID, err := resolveSeason(r)
	if err != nil {
		httputil.InternalServerError(w, "Failed to resolve season", err)
		return
	}

	topics := parseTopics(r.URL.Query().Get("topics"))
	if len(topics) == 0 {
		httputil.BadRequest(w, "No valid topics requested", nil)
		return
	}

	statsService := service.NewStatsService(matchStore, rosterStore)
	fetchers := map[string]livequery.FetchFunc{
		"schedule": func(ctx context.Context) (any, error) {
			matches, err := matchStore.ListMatches(ctx, seasonID)
			if err != nil {
				return nil, err
			}
			return stats.SortedByStart(matches), nil
		},
		"standings": func(ctx context.Context) (any, error) {
			return statsService.GetStandings(ctx, seasonID)
		},
		"playerTotals": func(ctx context.Context) (any, error) {
			return statsService.GetPlayerTotals(ctx, seasonID)
		},
		"teamTotals": func(ctx context.Context) (any, error) {
			return statsService.GetTeamTotals(ctx, seasonID)
		},
		"leaders": func(ctx context.Context) (any, error) {
			return statsService.GetLeaders(ctx, seasonID)
		},
		"rosters": func(ctx context.Context) (any, error) {
			return rosterStore.ListRosters(ctx, seasonID)
		},
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	mux := make(chan streamEvent, len(topics))
	for _, topic := range topics {
		ch, unsubscribe, err := hub.Subscribe(ctx, livequery.Key(topic, seasonID), fetchers[topic])
		if err != nil {
			httputil.InternalServerError(w, "Failed to subscribe", err)
			return
		}
		defer unsubscribe()

		go func(topic string, ch <-chan any) {
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-ch:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
					case mux <- streamEvent{topic: topic, data: v}:
					}
				}
			}
		}(topic, ch)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-mux:
			payload, err := json.Marshal(ev.data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.topic, payload)
			flusher.Flush()
		}
	}
}

func parseTopics(raw string) []string {
	if raw == "" {
		raw = "schedule,standings,playerTotals,teamTotals,leaders,rosters"
	}
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if streamTopics[t] {
			topics = append(topics, t)
		}
	}
	return topics
}
