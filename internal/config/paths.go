package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands environment variables and a leading ~ in p.
// On Windows it also expands %VAR% and accepts a ~\ prefix.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		expanded = expandWindowsEnv(expanded)
	}

	rest, ok := cutHomePrefix(expanded)
	if !ok {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// cutHomePrefix reports whether p starts with ~ as a whole path element and
// returns the remainder.
func cutHomePrefix(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if strings.HasPrefix(p, "~/") {
		return p[2:], true
	}
	if runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`) {
		return p[2:], true
	}
	return "", false
}

// expandWindowsEnv replaces %VAR% references with their values.
// Unknown variables and lone % signs are left as-is.
func expandWindowsEnv(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1

		key := p[start+1 : end]
		b.WriteString(p[:start])
		if val, ok := os.LookupEnv(key); ok && key != "" {
			b.WriteString(val)
			p = p[end+1:]
			continue
		}
		// Keep the opening % and rescan from the closing one.
		b.WriteString(p[start:end])
		p = p[end:]
	}
	b.WriteString(p)
	return b.String()
}
