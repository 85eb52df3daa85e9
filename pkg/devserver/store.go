package devserver

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixvc/mystira-client/pkg/api"
)

// contentStore holds the stub's fixture content and account data in
// memory. It stands in for the real backend's database.
type contentStore struct {
	mu sync.RWMutex

	characters map[string]api.Character
	scenarios  map[string]api.Scenario
	scenes     map[string][]api.Scene // keyed by scenario ID, play order
	bundles    map[string]api.Bundle
	archives   map[string][]byte // raw bundle payloads, keyed by bundle ID

	accounts map[string]*api.Account // keyed by lowercase email
	profiles map[string][]api.Profile
	sessions map[string][]api.SessionSummary // keyed by profile ID
}

func newContentStore() *contentStore {
	return &contentStore{
		characters: make(map[string]api.Character),
		scenarios:  make(map[string]api.Scenario),
		scenes:     make(map[string][]api.Scene),
		bundles:    make(map[string]api.Bundle),
		archives:   make(map[string][]byte),
		accounts:   make(map[string]*api.Account),
		profiles:   make(map[string][]api.Profile),
		sessions:   make(map[string][]api.SessionSummary),
	}
}

// seed loads a small fixture catalog so the SDK has something to fetch
// out of the box.
func (s *contentStore) seed() {
	now := time.Now().UTC()

	ember := api.Character{
		ID:          uuid.NewString(),
		Name:        "Ember",
		Description: "A fox spirit who guides newcomers through the vale.",
		Traits:      []string{"curious", "kind"},
		UpdatedAt:   now,
	}
	bram := api.Character{
		ID:          uuid.NewString(),
		Name:        "Bram",
		Description: "A retired lighthouse keeper with a story for every storm.",
		Traits:      []string{"patient", "stubborn"},
		UpdatedAt:   now,
	}

	vale := api.Scenario{
		ID:        uuid.NewString(),
		Title:     "The Whispering Vale",
		Summary:   "A first journey through the vale and its voices.",
		AgeRating: "8+",
		Tags:      []string{"intro", "nature"},
		UpdatedAt: now,
	}
	lantern := api.Scenario{
		ID:        uuid.NewString(),
		Title:     "The Last Lantern",
		Summary:   "Keep the harbor light burning through the longest night.",
		AgeRating: "10+",
		Tags:      []string{"coastal"},
		UpdatedAt: now,
	}

	valeScenes := []api.Scene{
		{ID: uuid.NewString(), ScenarioID: vale.ID, Title: "The Gate", Order: 1,
			Body: "The vale opens before you, mist curling around the old stone gate."},
		{ID: uuid.NewString(), ScenarioID: vale.ID, Title: "The Crossing", Order: 2,
			Body: "A narrow bridge spans the creek. Ember waits on the far side."},
	}
	valeScenes[0].Choices = []api.Choice{
		{ID: uuid.NewString(), Label: "Step through the gate", NextSceneID: valeScenes[1].ID},
	}
	lanternScenes := []api.Scene{
		{ID: uuid.NewString(), ScenarioID: lantern.ID, Title: "Nightfall", Order: 1,
			Body: "Bram hands you the striker. The wick is nearly spent."},
	}

	vale.SceneCount = len(valeScenes)
	lantern.SceneCount = len(lanternScenes)

	starter := api.Bundle{
		Manifest: api.BundleManifest{
			ID:        uuid.NewString(),
			Name:      "starter-pack",
			Version:   "1.0.0",
			UpdatedAt: now,
		},
		ScenarioIDs:  []string{vale.ID},
		CharacterIDs: []string{ember.ID},
	}
	archive := []byte("mystira-bundle:" + starter.Manifest.Name)
	starter.Manifest.Size = int64(len(archive))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters[ember.ID] = ember
	s.characters[bram.ID] = bram
	s.scenarios[vale.ID] = vale
	s.scenarios[lantern.ID] = lantern
	s.scenes[vale.ID] = valeScenes
	s.scenes[lantern.ID] = lanternScenes
	s.bundles[starter.Manifest.ID] = starter
	s.archives[starter.Manifest.ID] = archive
}

func (s *contentStore) listCharacters() []api.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Character, 0, len(s.characters))
	for _, c := range s.characters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *contentStore) getCharacter(id string) (api.Character, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.characters[id]
	return c, ok
}

func (s *contentStore) listScenarios() []api.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Scenario, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (s *contentStore) getScenario(id string) (api.Scenario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scenarios[id]
	return sc, ok
}

func (s *contentStore) listScenes(scenarioID string) ([]api.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.scenarios[scenarioID]; !ok {
		return nil, false
	}
	return s.scenes[scenarioID], true
}

func (s *contentStore) getScene(scenarioID, sceneID string) (api.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.scenes[scenarioID] {
		if sc.ID == sceneID {
			return sc, true
		}
	}
	return api.Scene{}, false
}

func (s *contentStore) listBundles() []api.BundleManifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.BundleManifest, 0, len(s.bundles))
	for _, b := range s.bundles {
		out = append(out, b.Manifest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *contentStore) getBundle(id string) (api.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bundles[id]
	return b, ok
}

func (s *contentStore) getArchive(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.archives[id]
	return data, ok
}

// ensureAccount returns the account for email, creating it when signup
// is requested. Emails are case-insensitive.
func (s *contentStore) ensureAccount(email, displayName string) *api.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acct, ok := s.accounts[email]; ok {
		return acct
	}

	acct := &api.Account{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	s.accounts[email] = acct

	// Every new account starts with one default profile.
	s.profiles[acct.ID] = []api.Profile{{
		ID:        uuid.NewString(),
		AccountID: acct.ID,
		Name:      "Player 1",
	}}
	return acct
}

func (s *contentStore) getAccount(email string) (*api.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[email]
	return acct, ok
}

func (s *contentStore) getAccountByID(id string) (*api.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.accounts {
		if acct.ID == id {
			return acct, true
		}
	}
	return nil, false
}

func (s *contentStore) listProfiles(accountID string) []api.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[accountID]
}

func (s *contentStore) hasProfile(accountID, profileID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles[accountID] {
		if p.ID == profileID {
			return true
		}
	}
	return false
}

func (s *contentStore) listSessions(profileID string) []api.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[profileID]
}
