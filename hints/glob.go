package hints

import (
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// PackageGlob is a package pattern as accepted by the CLI and the
// configuration file. "dir/**" and "dir/..." load recursively, a leading
// "!" excludes matching packages.
type PackageGlob struct {
	Pattern   string
	Recursive bool
	Exclude   bool
}

// ParseGlob parses a glob pattern and returns a PackageGlob
func ParseGlob(pattern string) *PackageGlob {
	glob := &PackageGlob{}
	if strings.HasPrefix(pattern, "!") {
		glob.Exclude = true
		pattern = strings.TrimPrefix(pattern, "!")
	}
	glob.Pattern = pattern
	glob.Recursive = strings.Contains(pattern, "**") || strings.HasSuffix(pattern, "/...")
	return glob
}

func (g *PackageGlob) isRelative() bool {
	return strings.HasPrefix(g.Pattern, "./") || strings.HasPrefix(g.Pattern, "../") || g.Pattern == "."
}

// Expand converts the glob into patterns understood by packages.Load
func (g *PackageGlob) Expand() []string {
	p := g.Pattern
	switch {
	case strings.HasSuffix(p, "/..."):
		return []string{p}
	case strings.HasSuffix(p, "/**"):
		base := strings.TrimSuffix(p, "/**")
		return []string{strings.ReplaceAll(base, "**/", "") + "/..."}
	case strings.Contains(p, "**/"):
		return []string{strings.ReplaceAll(p, "**/", "") + "/..."}
	}
	return []string{p}
}

// MatchesPattern checks if a package path matches the glob pattern
func (g *PackageGlob) MatchesPattern(pkgPath string) bool {
	pattern := g.Pattern
	clean := strings.TrimPrefix(strings.TrimPrefix(pattern, "../"), "./")

	if base, ok := strings.CutSuffix(pattern, "/**"); ok {
		if g.isRelative() {
			baseName := strings.TrimPrefix(strings.TrimPrefix(base, "../"), "./")
			if baseName == "" || baseName == "." {
				return true
			}
			return strings.Contains(pkgPath, baseName)
		}
		return strings.HasPrefix(pkgPath, base)
	}

	if strings.Contains(pattern, "*") {
		if g.isRelative() {
			if matched, _ := filepath.Match(clean, filepath.Base(pkgPath)); matched {
				return true
			}
			matched, _ := filepath.Match(clean, pkgPath)
			return matched
		}
		matched, _ := filepath.Match(pattern, pkgPath)
		return matched
	}

	if pattern == pkgPath {
		return true
	}
	if g.isRelative() {
		return strings.HasSuffix(pkgPath, "/"+clean) || pkgPath == clean
	}
	return false
}

// LoadPackages loads the packages matching patterns with cfg. Patterns
// starting with "!" exclude packages; duplicates are dropped.
func LoadPackages(cfg *packages.Config, patterns ...string) ([]*packages.Package, error) {
	var include []string
	var exclude []*PackageGlob
	for _, p := range patterns {
		g := ParseGlob(p)
		if g.Exclude {
			exclude = append(exclude, g)
			continue
		}
		include = append(include, g.Expand()...)
	}
	if len(include) == 0 {
		return nil, nil
	}

	pkgs, err := packages.Load(cfg, include...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(pkgs))
	var out []*packages.Package
	for _, pkg := range pkgs {
		if seen[pkg.PkgPath] {
			continue
		}
		excluded := false
		for _, g := range exclude {
			if g.MatchesPattern(pkg.PkgPath) || g.Pattern == pkg.Name {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		seen[pkg.PkgPath] = true
		out = append(out, pkg)
	}
	return out, nil
}
