package app

import (
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

func toPlayer(r *secondary.PlayerRecord) *primary.Player {
	return &primary.Player{ID: r.ID, Name: r.Name, Banned: r.Banned}
}

func toPlayers(records []*secondary.PlayerRecord) []*primary.Player {
	players := make([]*primary.Player, 0, len(records))
	for _, r := range records {
		players = append(players, toPlayer(r))
	}
	return players
}

func toMinimalDemon(r *secondary.DemonRecord) primary.MinimalDemon {
	return primary.MinimalDemon{ID: r.ID, Position: r.Position, Name: r.Name}
}

func toDemon(r *secondary.DemonRecord) primary.Demon {
	d := primary.Demon{
		MinimalDemon: toMinimalDemon(r),
		Requirement:  r.Requirement,
		FPS:          optionalString(r.FPS),
		Video:        optionalString(r.Video),
		Publisher:    primary.Player{ID: r.PublisherID, Name: r.PublisherName},
		Verifier:     primary.Player{ID: r.VerifierID, Name: r.VerifierName},
		Hidden:       r.Hidden,
	}
	if r.LevelID != 0 {
		levelID := r.LevelID
		d.LevelID = &levelID
	}
	return d
}

func toRecords(records []*secondary.CompletionRecord) []*primary.Record {
	out := make([]*primary.Record, 0, len(records))
	for _, r := range records {
		out = append(out, &primary.Record{
			ID:       r.ID,
			Progress: r.Progress,
			Video:    optionalString(r.Video),
			Status:   r.Status,
			Player:   primary.Player{ID: r.PlayerID, Name: r.PlayerName},
		})
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
