package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// scenariosClient implements ScenariosAPI over HTTP
type scenariosClient struct {
	client *client
}

// List returns all scenarios
func (sc *scenariosClient) List(ctx context.Context) ([]Scenario, error) {
	var out struct {
		Scenarios []Scenario `json:"scenarios"`
	}
	if err := sc.client.doJSON(ctx, http.MethodGet, "/v1/scenarios", nil, &out); err != nil {
		return nil, err
	}
	return out.Scenarios, nil
}

// Get returns a single scenario by ID
func (sc *scenariosClient) Get(ctx context.Context, id string) (*Scenario, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("id", "scenario id is required", id)
	}

	var out Scenario
	if err := sc.client.doJSON(ctx, http.MethodGet, "/v1/scenarios/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Scenes returns all scenes of a scenario in play order
func (sc *scenariosClient) Scenes(ctx context.Context, scenarioID string) ([]Scene, error) {
	if strings.TrimSpace(scenarioID) == "" {
		return nil, errors.NewValidationError("scenario_id", "scenario id is required", scenarioID)
	}

	var out struct {
		Scenes []Scene `json:"scenes"`
	}
	path := "/v1/scenarios/" + url.PathEscape(scenarioID) + "/scenes"
	if err := sc.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Scenes, nil
}

// Scene returns a single scene of a scenario
func (sc *scenariosClient) Scene(ctx context.Context, scenarioID, sceneID string) (*Scene, error) {
	if strings.TrimSpace(scenarioID) == "" {
		return nil, errors.NewValidationError("scenario_id", "scenario id is required", scenarioID)
	}
	if strings.TrimSpace(sceneID) == "" {
		return nil, errors.NewValidationError("scene_id", "scene id is required", sceneID)
	}

	var out Scene
	path := "/v1/scenarios/" + url.PathEscape(scenarioID) + "/scenes/" + url.PathEscape(sceneID)
	if err := sc.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
