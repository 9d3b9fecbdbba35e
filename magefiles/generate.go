//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Generate runs one pipeline pass from the command line. Set TOPIC, PLATFORM
// and TONE in the environment; PLATFORM defaults to LinkedIn and TONE to
// Professional.
func Generate() error {
	mg.Deps(Build)
	args := []string{"generate", "--topic", envOr("TOPIC", "the future of remote work")}
	args = append(args, "--platform", envOr("PLATFORM", "LinkedIn"))
	args = append(args, "--tone", envOr("TONE", "Professional"))
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Echo runs Generate against the echo provider, which needs no API keys.
func Echo() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"CONTENT_ENGINE_GENERATION_PROVIDER": "echo"},
		filepath.Join(binDir, binName), "generate", "--topic", envOr("TOPIC", "remote work"),
		"--platform", envOr("PLATFORM", "Twitter"), "--tone", envOr("TONE", "punchy"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
