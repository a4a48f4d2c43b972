package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bastiangx/procseek/pkg/format"
	"github.com/bastiangx/procseek/pkg/match"
	"github.com/bastiangx/procseek/pkg/procsource"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	hitStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func renderDetail(d procsource.Detail) []string {
	return []string{
		labelStyle.Render("PID:") + " " + strconv.Itoa(d.PID),
		labelStyle.Render("Name:") + " " + d.Name,
		labelStyle.Render("Memory Usage:") + " " + format.Bytes(d.MemoryBytes),
		labelStyle.Render("CPU Time:") + " " + format.Duration(d.CPUTime),
		labelStyle.Render("CPU Usage:") + " " + strconv.Itoa(d.CPUUsage()) + "%",
	}
}

func renderCandidate(rank int, c match.Candidate, term string, highlight bool) string {
	name := c.Name
	if highlight {
		name = highlightMatches(term, c.Name)
	}
	return fmt.Sprintf("%2d. %7d  %s %s",
		rank, c.PID, name,
		faintStyle.Render(fmt.Sprintf("(score: %.3f, mem: %s)", c.Score, format.Bytes(c.MemoryBytes))))
}

// highlightMatches styles the characters of name that fuzzily match term.
func highlightMatches(term, name string) string {
	lowerName := strings.ToLower(name)
	// match positions are byte offsets, only usable if lowercasing kept them
	if term == "" || len(lowerName) != len(name) {
		return name
	}

	matches := fuzzy.Find(strings.ToLower(term), []string{lowerName})
	if len(matches) == 0 {
		return name
	}

	hits := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		hits[i] = true
	}

	var b strings.Builder
	for i, r := range name {
		if hits[i] {
			b.WriteString(hitStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
