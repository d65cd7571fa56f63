// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation files against the source tree. It
// reports message IDs used in code but missing from the primary locale, IDs
// the primary locale has that other locales lack, and orphaned IDs.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// keyLiteral matches message IDs passed to i18n.T and ID-shaped literals
// kept in tables (menu entries, prompts). A literal ending in a dot is a
// prefix completed at run time.
var keyLiteral = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z][a-z_]*(?:\.[a-z_]+)+\.?)"`)

type keySet map[string]struct{}

func (s keySet) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// report is the outcome of one lint run.
type report struct {
	Used      int
	Primary   int
	Undefined []string            // passed to i18n.T, absent from the primary locale
	Missing   map[string][]string // locale file -> IDs it lacks
	Orphaned  []string            // in the primary locale, never referenced
}

func (r report) failed() bool {
	if len(r.Undefined) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

// usage is what the source tree references.
type usage struct {
	direct     keySet   // literal arguments of i18n.T
	referenced keySet   // every ID-shaped literal, direct ones included
	prefixes   []string // literals completed at run time
}

// findUsedKeys scans the non-test Go files under root.
func findUsedKeys(root string) (usage, error) {
	u := usage{direct: keySet{}, referenced: keySet{}}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyLiteral.FindAllStringSubmatch(string(content), -1) {
			key, direct := m[1], true
			if key == "" {
				key, direct = m[2], false
			}
			if strings.HasSuffix(key, ".") {
				u.prefixes = append(u.prefixes, key)
				continue
			}
			u.referenced[key] = struct{}{}
			if direct {
				u.direct[key] = struct{}{}
			}
		}
		return nil
	})
	return u, err
}

// loadKeysFromLocale reads a YAML file and returns its message IDs. Nested
// maps are flattened with dots, matching how go-i18n reads them.
func loadKeysFromLocale(path string) (keySet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	keys := keySet{}
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node any, keys keySet) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flattenYAML(k, v, keys)
	}
}

func hasPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func lint(root, locales string) (report, error) {
	used, err := findUsedKeys(root)
	if err != nil {
		return report{}, fmt.Errorf("scanning sources: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return report{}, fmt.Errorf("loading primary locale: %w", err)
	}

	r := report{Used: len(used.direct), Primary: len(primary), Missing: map[string][]string{}}
	for _, k := range used.direct.sorted() {
		if _, ok := primary[k]; !ok {
			r.Undefined = append(r.Undefined, k)
		}
	}
	for _, k := range primary.sorted() {
		if _, ok := used.referenced[k]; !ok && !hasPrefix(k, used.prefixes) {
			r.Orphaned = append(r.Orphaned, k)
		}
	}

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, err
		}
		r.Missing[name] = []string{}
		for _, k := range primary.sorted() {
			if _, ok := keys[k]; !ok {
				r.Missing[name] = append(r.Missing[name], k)
			}
		}
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	fmt.Fprintf(w, "✅ %d message IDs used in code, %d in %s.\n\n", r.Used, r.Primary, primaryLocale)

	section := func(title string, keys []string, label string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(keys) == 0 {
			fmt.Fprintln(w, "  ✨ None found.")
		}
		for _, k := range keys {
			fmt.Fprintf(w, "  - %s: %s\n", label, k)
		}
		fmt.Fprintln(w)
	}
	section("Undefined IDs (used in code, not in "+primaryLocale+")", r.Undefined, "Undefined")
	names := make([]string, 0, len(r.Missing))
	for name := range r.Missing {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		section("Missing in "+name, r.Missing[name], "Missing")
	}
	section("Orphaned IDs (in "+primaryLocale+", not used in code)", r.Orphaned, "Orphaned")
}

func main() {
	fmt.Println("🔍 Running i18n linter...")
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	switch {
	case r.failed():
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	case len(r.Orphaned) > 0:
		fmt.Println("⚠️  Found orphaned IDs. Please consider removing them.")
	default:
		fmt.Println("✅ All translation files are consistent!")
	}
}
