package plugin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Prefix is prepended to plugin names to form the executable name.
const Prefix = "hkb-"

// FindPlugin looks for a hkb-* plugin in the PATH
func FindPlugin(name string) (string, error) {
	pluginName := Prefix + name
	path, err := exec.LookPath(pluginName)
	if err != nil {
		return "", fmt.Errorf("plugin '%s' not found in PATH", pluginName)
	}
	return path, nil
}

// ExecutePlugin runs a hkb-* plugin with the given arguments
func ExecutePlugin(name string, args []string) error {
	pluginPath, err := FindPlugin(name)
	if err != nil {
		return err
	}

	cmd := exec.Command(pluginPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	return cmd.Run()
}

// RunMatcher runs the matcher plugin with phrase as its only argument and
// returns what it printed on stdout: one sentence as JSON, or nothing when the
// phrase did not match.
func RunMatcher(ctx context.Context, name, phrase string) ([]byte, error) {
	pluginPath, err := FindPlugin(name)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, pluginPath, phrase)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("matcher %s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("matcher %s: %w", name, err)
	}

	return bytes.TrimSpace(stdout.Bytes()), nil
}

// ListPlugins returns a list of available hkb-* plugins in PATH
func ListPlugins() ([]string, error) {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil, nil
	}

	paths := strings.Split(pathEnv, string(os.PathListSeparator))
	plugins := make(map[string]bool)

	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, Prefix) && !entry.IsDir() {
				// Check if executable
				fullPath := dir + string(os.PathSeparator) + name
				info, err := os.Stat(fullPath)
				if err != nil {
					continue
				}

				if info.Mode()&0111 != 0 {
					plugins[strings.TrimPrefix(name, Prefix)] = true
				}
			}
		}
	}

	result := make([]string, 0, len(plugins))
	for plugin := range plugins {
		result = append(result, plugin)
	}

	return result, nil
}
