package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/demonlist/internal/ports/primary"
)

// maxPageSize bounds the limit query parameter.
const maxPageSize = 100

func CreateDemon(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub primary.DemonSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(r.Context(), w, logger, badRequest("invalid request body: "+err.Error()))
			return
		}

		demon, err := demons.CreateDemon(r.Context(), sub)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/v2/demons/%d/", demon.Demon.ID))
		writeJSON(w, http.StatusCreated, dataResponse{Data: demon})
	}
}

func ListDemons(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := primary.DemonFilters{
			Name:          query.Get("name"),
			IncludeHidden: query.Get("hidden") == "true",
		}

		var err error
		if filters.After, err = intParam(query.Get("after"), 0); err != nil {
			writeError(r.Context(), w, logger, badRequest("after must be an integer"))
			return
		}
		if filters.Limit, err = intParam(query.Get("limit"), 50); err != nil || filters.Limit < 1 || filters.Limit > maxPageSize {
			writeError(r.Context(), w, logger, badRequest(fmt.Sprintf("limit must be between 1 and %d", maxPageSize)))
			return
		}

		listed, err := demons.ListDemons(r.Context(), filters)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		if listed == nil {
			listed = []*primary.ListedDemon{}
		}
		writeJSON(w, http.StatusOK, dataResponse{Data: listed})
	}
}

func GetDemon(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		demon, err := demons.GetDemon(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dataResponse{Data: demon})
	}
}

func GetDemonByPosition(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position, err := strconv.Atoi(chi.URLParam(r, "position"))
		if err != nil {
			writeError(r.Context(), w, logger, badRequest("position must be an integer"))
			return
		}
		demon, err := demons.GetDemonByPosition(r.Context(), position)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dataResponse{Data: demon})
	}
}

func UpdateDemon(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}

		var req primary.UpdateDemonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(r.Context(), w, logger, badRequest("invalid request body: "+err.Error()))
			return
		}
		req.DemonID = id

		demon, err := demons.UpdateDemon(r.Context(), req)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dataResponse{Data: demon})
	}
}

func AddCreator(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}

		var body struct {
			Creator string `json:"creator"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(r.Context(), w, logger, badRequest("invalid request body: "+err.Error()))
			return
		}

		player, err := demons.AddCreator(r.Context(), id, body.Creator)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/v1/players/%d/", player.ID))
		writeJSON(w, http.StatusCreated, dataResponse{Data: player})
	}
}

func RemoveCreator(demons primary.DemonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		playerID, err := idParam(r, "player")
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}

		if err := demons.RemoveCreator(r.Context(), id, playerID); err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListPlayers(players primary.PlayerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		limit, err := intParam(query.Get("limit"), 50)
		if err != nil || limit < 1 || limit > maxPageSize {
			writeError(r.Context(), w, logger, badRequest(fmt.Sprintf("limit must be between 1 and %d", maxPageSize)))
			return
		}

		listed, err := players.ListPlayers(r.Context(), primary.PlayerFilters{Name: query.Get("name"), Limit: limit})
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		if listed == nil {
			listed = []*primary.Player{}
		}
		writeJSON(w, http.StatusOK, dataResponse{Data: listed})
	}
}

func GetPlayer(players primary.PlayerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		player, err := players.GetPlayer(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dataResponse{Data: player})
	}
}

// Healthz reports 200 while the list passes its integrity check, 503 otherwise.
func Healthz(integrity primary.IntegrityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := integrity.CheckIntegrity(r.Context())
		if err != nil {
			writeError(r.Context(), w, logger, err)
			return
		}
		status := http.StatusOK
		if len(report.Problems) > 0 {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, report)
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, badRequest(name + " must be a positive integer")
	}
	return id, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
