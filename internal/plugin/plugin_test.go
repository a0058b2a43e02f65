package plugin

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writePlugin(t *testing.T, dir, name, script string, perm os.FileMode) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), perm); err != nil {
		t.Fatalf("Failed to create test plugin %s: %v", name, err)
	}
}

func TestFindPlugin(t *testing.T) {
	tmpDir := t.TempDir()
	writePlugin(t, tmpDir, "hkb-testplugin", "#!/bin/sh\necho test", 0755)

	t.Setenv("PATH", tmpDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, err := FindPlugin("testplugin")
	if err != nil {
		t.Errorf("FindPlugin failed: %v", err)
	}

	if found == "" {
		t.Error("Expected to find plugin")
	}

	// Test finding non-existent plugin
	_, err = FindPlugin("nonexistent")
	if err == nil {
		t.Error("Expected error for non-existent plugin")
	}
}

func TestListPlugins(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"hkb-plugin1", "hkb-plugin2", "hkb-matcher"} {
		writePlugin(t, tmpDir, name, "#!/bin/sh\necho test", 0755)
	}

	// Create a non-plugin file that shouldn't be listed
	writePlugin(t, tmpDir, "not-a-plugin", "test", 0755)

	// Create a non-executable hkb- file that shouldn't be listed
	writePlugin(t, tmpDir, "hkb-nonexec", "test", 0644)

	t.Setenv("PATH", tmpDir)

	found, err := ListPlugins()
	if err != nil {
		t.Fatalf("ListPlugins failed: %v", err)
	}

	if len(found) != 3 {
		t.Errorf("Expected to find 3 plugins, got %d", len(found))
	}

	pluginMap := make(map[string]bool)
	for _, p := range found {
		pluginMap[p] = true
	}

	for _, expected := range []string{"plugin1", "plugin2", "matcher"} {
		if !pluginMap[expected] {
			t.Errorf("Expected to find plugin %s", expected)
		}
	}
}

func TestListPluginsEmptyPath(t *testing.T) {
	t.Setenv("PATH", "")

	plugins, err := ListPlugins()
	if err != nil {
		t.Fatalf("ListPlugins with empty PATH should not error: %v", err)
	}

	if len(plugins) != 0 {
		t.Errorf("Expected empty plugin list, got %d plugins", len(plugins))
	}
}

func TestRunMatcher(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins")
	}

	tmpDir := t.TempDir()
	writePlugin(t, tmpDir, "hkb-echo", `#!/bin/sh
if [ "$1" = "in 5 minutes" ]; then
  echo '{"shape":"in","amount":"5","unit":"minutes"}'
fi
`, 0755)
	writePlugin(t, tmpDir, "hkb-broken", "#!/bin/sh\necho 'grammar not loaded' >&2\nexit 3\n", 0755)

	t.Setenv("PATH", tmpDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	t.Run("match", func(t *testing.T) {
		out, err := RunMatcher(context.Background(), "echo", "in 5 minutes")
		if err != nil {
			t.Fatalf("RunMatcher failed: %v", err)
		}
		if string(out) != `{"shape":"in","amount":"5","unit":"minutes"}` {
			t.Errorf("Unexpected matcher output %q", out)
		}
	})

	t.Run("no match", func(t *testing.T) {
		out, err := RunMatcher(context.Background(), "echo", "whenever")
		if err != nil {
			t.Fatalf("RunMatcher failed: %v", err)
		}
		if len(out) != 0 {
			t.Errorf("Expected empty output, got %q", out)
		}
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		_, err := RunMatcher(context.Background(), "broken", "in 5 minutes")
		if err == nil {
			t.Fatal("Expected error from failing matcher")
		}
		if !strings.Contains(err.Error(), "grammar not loaded") {
			t.Errorf("Expected stderr in error, got %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := RunMatcher(context.Background(), "nonexistent", "x"); err == nil {
			t.Error("Expected error for missing matcher")
		}
	})
}
