// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// Doc generator:
// - Reads docs/commands/*.md as canonical command docs
// - Generates:
//   - docs/man/share/man1/citectl-<cmd>.1 via md2man (convert full markdown)
//   - docs/tldr/citectl-<cmd>.md using the Quick examples block and short description

const prog = "citectl"

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir %s: %v", dir, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		fatalf("reading commands dir %s: %v", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		inPath := filepath.Join(commandsDir, e.Name())
		raw, err := os.ReadFile(inPath)
		if err != nil {
			fatalf("reading %s: %v", inPath, err)
		}

		man, tldr := render(cmd, raw)

		manPath := filepath.Join(manOutDir, fmt.Sprintf("%s-%s.1", prog, cmd))
		if err := writeFileIfChanged(manPath, man, writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("%s-%s.md", prog, cmd))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no command markdown found under %s", commandsDir)
	}
}

// render returns the man page and tldr page for one command document.
func render(cmd string, raw []byte) ([]byte, string) {
	title, shortDesc := extractTitleAndShortDesc(string(raw))
	examples := extractQuickExamples(string(raw))
	return md2man.Render(raw), buildTLDR(cmd, title, shortDesc, examples)
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, content []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, content, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, content, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)) {
		return nil
	}
	return os.WriteFile(path, content, 0o644)
}

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// extractTitleAndShortDesc returns the first H1 and the first paragraph of
// the "Short description" section.
func extractTitleAndShortDesc(md string) (title, short string) {
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}

	idx := strings.Index(strings.ToLower(md), "short description")
	if idx >= 0 {
		rest := md[idx:]
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			rest = rest[nl+1:]
		}
		var b strings.Builder
		for _, ln := range strings.Split(rest, "\n") {
			ln = strings.TrimSpace(ln)
			if ln == "" {
				if b.Len() > 0 {
					break
				}
				continue
			}
			if strings.HasPrefix(ln, "#") || strings.HasSuffix(ln, ":") {
				break
			}
			b.WriteString(ln)
			b.WriteString(" ")
		}
		short = strings.TrimSpace(b.String())
	}

	if short == "" && title != "" {
		short = title + "."
	}
	return
}

type example struct {
	Desc string
	Cmd  string
}

// extractQuickExamples reads the first fenced block after "Quick examples".
// A "# comment" line describes the command line that follows it.
func extractQuickExamples(md string) []example {
	idx := strings.Index(strings.ToLower(md), "quick examples")
	if idx < 0 {
		return nil
	}
	rest := md[idx:]

	const fence = "```"
	fenceStart := strings.Index(rest, fence)
	if fenceStart < 0 {
		return nil
	}
	rest = rest[fenceStart+len(fence):]
	// Skip an info string such as ```sh.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	fenceEnd := strings.Index(rest, fence)
	if fenceEnd < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(rest[:fenceEnd], "\n") {
		s := strings.TrimSpace(strings.TrimRight(ln, "\r"))
		switch {
		case s == "":
			continue
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: s})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd, title, short string, exs []example) string {
	var b strings.Builder
	b.WriteString("# " + prog + "-" + cmd + "\n\n")
	switch {
	case short != "":
		b.WriteString("> " + short + "\n")
	case title != "":
		b.WriteString("> " + title + "\n")
	default:
		b.WriteString("> " + prog + " " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/citectl.\n\n")

	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`" + prog + " " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

// sanitizeCommand compresses runs of whitespace.
func sanitizeCommand(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
