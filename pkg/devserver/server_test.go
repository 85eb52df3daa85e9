package devserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixvc/mystira-client/pkg/api"
	"github.com/phoenixvc/mystira-client/pkg/config"
)

// startStub mounts a seeded stub server on an httptest listener and
// returns an SDK client pointed at it.
func startStub(t *testing.T) (api.Client, *httptest.Server) {
	t.Helper()

	srv, err := NewServer(nil, &config.StubConfig{
		ListenAddr: "127.0.0.1:0",
		SeedData:   true,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := api.DefaultClientConfig(ts.URL)
	cfg.QuietMode = true
	client, err := api.NewClient(cfg)
	require.NoError(t, err)

	return client, ts
}

func TestStubHealth(t *testing.T) {
	_, ts := startStub(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStubContentCatalog(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	characters, err := client.Characters().List(ctx)
	require.NoError(t, err)
	require.Len(t, characters, 2)

	char, err := client.Characters().Get(ctx, characters[0].ID)
	require.NoError(t, err)
	assert.Equal(t, characters[0].Name, char.Name)

	scenarios, err := client.Scenarios().List(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	var vale api.Scenario
	for _, s := range scenarios {
		if s.Title == "The Whispering Vale" {
			vale = s
		}
	}
	require.NotEmpty(t, vale.ID, "seeded scenario missing")
	assert.Equal(t, 2, vale.SceneCount)

	scenes, err := client.Scenarios().Scenes(ctx, vale.ID)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, 1, scenes[0].Order)

	scene, err := client.Scenarios().Scene(ctx, vale.ID, scenes[0].ID)
	require.NoError(t, err)
	require.Len(t, scene.Choices, 1)
	assert.Equal(t, scenes[1].ID, scene.Choices[0].NextSceneID)
}

func TestStubContentNotFound(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	_, err := client.Characters().Get(ctx, "no-such-id")
	assert.Error(t, err)

	_, err = client.Scenarios().Scenes(ctx, "no-such-id")
	assert.Error(t, err)
}

func TestStubBundleDownload(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	bundles, err := client.Bundles().List(ctx)
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, "starter-pack", bundles[0].Name)

	bundle, err := client.Bundles().Get(ctx, bundles[0].ID)
	require.NoError(t, err)
	assert.Len(t, bundle.ScenarioIDs, 1)
	assert.Len(t, bundle.CharacterIDs, 1)

	rc, err := client.Bundles().Download(ctx, bundles[0].ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "mystira-bundle:starter-pack", string(data))
	assert.Equal(t, bundles[0].Size, int64(len(data)))
}

func TestStubSignupFlow(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	challenge, err := client.Auth().RequestSignup(ctx, "new@mystira.app", "New Player")
	require.NoError(t, err)
	assert.Equal(t, "email", challenge.Delivery)
	require.NotEmpty(t, challenge.DebugCode, "stub must hand the code back")
	require.Len(t, challenge.DebugCode, 6)

	pair, err := client.Auth().Verify(ctx, "new@mystira.app", challenge.DebugCode)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	account, err := client.Accounts().Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new@mystira.app", account.Email)
	assert.Equal(t, "New Player", account.DisplayName)

	// A default profile comes with every new account.
	profiles, err := client.Accounts().Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	sessions, err := client.Accounts().Sessions(ctx, profiles[0].ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStubSigninRequiresAccount(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	_, err := client.Auth().RequestSignin(ctx, "stranger@mystira.app")
	assert.Error(t, err, "signin for an unknown account must fail")
}

func TestStubCodesAreSingleUse(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	challenge, err := client.Auth().RequestSignup(ctx, "once@mystira.app", "Once")
	require.NoError(t, err)

	_, err = client.Auth().Verify(ctx, "once@mystira.app", challenge.DebugCode)
	require.NoError(t, err)

	// The consumed code cannot be replayed.
	_, err = client.Auth().Verify(ctx, "once@mystira.app", challenge.DebugCode)
	assert.Error(t, err)
}

func TestStubWrongCodeConsumesChallenge(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	challenge, err := client.Auth().RequestSignup(ctx, "guess@mystira.app", "Guess")
	require.NoError(t, err)

	_, err = client.Auth().Verify(ctx, "guess@mystira.app", "000000")
	require.Error(t, err)

	// One failed guess burns the challenge entirely.
	_, err = client.Auth().Verify(ctx, "guess@mystira.app", challenge.DebugCode)
	assert.Error(t, err)
}

func TestStubRefreshRotation(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	challenge, err := client.Auth().RequestSignup(ctx, "rotate@mystira.app", "Rotator")
	require.NoError(t, err)
	first, err := client.Auth().Verify(ctx, "rotate@mystira.app", challenge.DebugCode)
	require.NoError(t, err)

	second, err := client.Auth().Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old refresh token is revoked by rotation.
	_, err = client.Auth().Refresh(ctx, first.RefreshToken)
	assert.Error(t, err)
}

func TestStubLogoutRevokesRefresh(t *testing.T) {
	client, _ := startStub(t)
	ctx := context.Background()

	challenge, err := client.Auth().RequestSignup(ctx, "leave@mystira.app", "Leaver")
	require.NoError(t, err)
	pair, err := client.Auth().Verify(ctx, "leave@mystira.app", challenge.DebugCode)
	require.NoError(t, err)

	refreshToken := pair.RefreshToken
	require.NoError(t, client.Auth().Logout(ctx, refreshToken))

	_, err = client.Auth().Refresh(ctx, refreshToken)
	assert.Error(t, err)
}

func TestStubAccountEndpointsRejectBadToken(t *testing.T) {
	_, ts := startStub(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/accounts/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer bogus")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
