package main

import (
	"os"
	"strings"

	"ideas-cli/internal/cli"

	"github.com/google/uuid"
)

// isProjectID accepts a full uuid or an id prefix of at least 8 hex characters.
func isProjectID(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	if len(s) < 8 || len(s) > 36 || s[0] == '-' {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef-", r) {
			return false
		}
	}
	return true
}

func rewriteDirectProjectArgs(argv []string) []string {
	// Convenience: `ideas <project-id>` works like `ideas projects show <project-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `ideas --dir ... <project-id>`), so we look
	// for the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--backend":   true,
		"--format":    true,
		"--log-level": true,
		"--log-file":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "projects", "show")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isProjectID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isProjectID(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectProjectArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
