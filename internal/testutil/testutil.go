// Package testutil provides shared test helpers for config files and stored profiles.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/revisahub/revisahub/internal/profile"
	"github.com/stretchr/testify/require"
)

const ProfileNamespace = "mindly_profile"

// SetupTestConfig creates a config file pointing the client at baseURL and keeping all state
// under tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()

	for _, d := range []string{"state", "exports"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout_seconds: 5
  retry_attempts: 0
storage:
  state_directory: %s
  profile_namespace: %s
  export_directory: %s
display:
  markdown: false
  word_wrap: 80
onboarding:
  catalog: minimal
`,
		baseURL,
		filepath.Join(tmpDir, "state"),
		ProfileNamespace,
		filepath.Join(tmpDir, "exports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SaveProfile stores p where SetupTestConfig expects the profile.
func SaveProfile(t *testing.T, tmpDir string, p profile.Profile) *profile.FileStore {
	t.Helper()
	store := profile.NewFileStore(filepath.Join(tmpDir, "state"), ProfileNamespace)
	require.NoError(t, store.Save(p))
	return store
}

// LearnerProfile returns a complete profile of a learner named Ana who likes Naruto.
func LearnerProfile(id string) profile.Profile {
	return profile.Profile{
		ID:                id,
		Name:              "Ana",
		VarkPrimary:       "visual",
		ExplanationFormat: "analogias_historias",
		Approach:          "pratica",
		SocialInteraction: "sozinho",
		Motivator:         "desafios_metas",
		CulturalInterest:  "Naruto",
	}
}
