package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phoenixvc/mystira-client/pkg/api"
	"github.com/phoenixvc/mystira-client/pkg/httputil"
)

// limitParam reads the optional ?limit= query parameter. Zero or a
// negative value means no limit.
func limitParam(r *http.Request) int {
	return httputil.QueryParamInt(r, "limit", 0)
}

func clamp[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]api.Character{
		"characters": clamp(s.store.listCharacters(), limitParam(r)),
	})
}

func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	character, ok := s.store.getCharacter(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "character not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, character)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := s.store.listScenarios()
	if tag := httputil.QueryParam(r, "tag", ""); tag != "" {
		filtered := scenarios[:0]
		for _, sc := range scenarios {
			for _, t := range sc.Tags {
				if t == tag {
					filtered = append(filtered, sc)
					break
				}
			}
		}
		scenarios = filtered
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]api.Scenario{
		"scenarios": clamp(scenarios, limitParam(r)),
	})
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scenario, ok := s.store.getScenario(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "scenario not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scenario)
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "id")
	scenes, ok := s.store.listScenes(scenarioID)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "scenario not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]api.Scene{
		"scenes": scenes,
	})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "id")
	sceneID := chi.URLParam(r, "sceneID")
	scene, ok := s.store.getScene(scenarioID, sceneID)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "scene not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scene)
}

func (s *Server) handleListBundles(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]api.BundleManifest{
		"bundles": clamp(s.store.listBundles(), limitParam(r)),
	})
}

func (s *Server) handleGetBundle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bundle, ok := s.store.getBundle(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "bundle not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleDownloadBundle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	archive, ok := s.store.getArchive(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "bundle not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.store.getAccountByID(accountIDFrom(r.Context()))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "account not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, acct)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := s.store.listProfiles(accountIDFrom(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, map[string][]api.Profile{
		"profiles": profiles,
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	if !s.store.hasProfile(accountIDFrom(r.Context()), profileID) {
		httputil.WriteError(w, http.StatusNotFound, "profile not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]api.SessionSummary{
		"sessions": s.store.listSessions(profileID),
	})
}
