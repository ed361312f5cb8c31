// Package status summarizes the health of a deck: unregistered card
// files, cards missing identities, and overall counts.
package status

import (
	"fmt"
	"io"
	"sort"

	"github.com/mathema-dev/mathema/internal/storage"
)

// Report is the collected deck status.
type Report struct {
	UnknownCardFiles []string
	// MissingUUIDs maps a card file to the start lines of cards that
	// have no uuid yet.
	MissingUUIDs   map[string][]int
	ValidCards     int
	ValidCardFiles int
}

// Collect builds a status report for an opened repository. LoadCards
// must have run already.
func Collect(repo *storage.Repository) (*Report, error) {
	report := &Report{MissingUUIDs: make(map[string][]int)}

	all, err := repo.AllCardFiles()
	if err != nil {
		return nil, err
	}
	registered := make(map[string]bool)
	for _, path := range repo.Database().CardFiles() {
		registered[path] = true
	}
	for _, path := range all {
		if !registered[path] {
			report.UnknownCardFiles = append(report.UnknownCardFiles, path)
		}
	}
	sort.Strings(report.UnknownCardFiles)

	report.ValidCardFiles = len(repo.Database().CardFiles())
	report.ValidCards = len(repo.CardUUIDs())

	for _, card := range repo.CardsWithoutUUID() {
		report.MissingUUIDs[card.SourceFile] = append(report.MissingUUIDs[card.SourceFile], card.StartLine)
	}
	for _, lines := range report.MissingUUIDs {
		sort.Ints(lines)
	}

	return report, nil
}

// Clean reports whether the deck has no problems worth warning about.
func (r *Report) Clean() bool {
	return len(r.UnknownCardFiles) == 0 && len(r.MissingUUIDs) == 0
}

// Print writes the human-readable report.
func (r *Report) Print(w io.Writer) {
	needsSeparator := false

	if len(r.UnknownCardFiles) > 0 {
		fmt.Fprintln(w, "Unknown card files (try `mathema add`):")
		for _, path := range r.UnknownCardFiles {
			fmt.Fprintf(w, "  %s\n", path)
		}
		needsSeparator = true
	}

	if len(r.MissingUUIDs) > 0 {
		if needsSeparator {
			fmt.Fprintln(w)
		}
		needsSeparator = true
		fmt.Fprintln(w, "Files containing cards with missing UUIDs (try `mathema add`):")
		files := make([]string, 0, len(r.MissingUUIDs))
		for file := range r.MissingUUIDs {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			fmt.Fprintf(w, "  %s (on %s)\n", file, describeLines(r.MissingUUIDs[file]))
		}
	}

	if needsSeparator {
		fmt.Fprintln(w)
	}
	if r.ValidCardFiles == 0 {
		fmt.Fprintln(w, "No card files added so far.")
	} else {
		fmt.Fprintf(w, "%d valid cards found amongst %d files.\n", r.ValidCards, r.ValidCardFiles)
	}
}

func describeLines(lines []int) string {
	switch len(lines) {
	case 1:
		return fmt.Sprintf("line %d", lines[0])
	case 2:
		return fmt.Sprintf("lines %d and %d", lines[0], lines[1])
	default:
		s := "lines "
		for _, line := range lines[:len(lines)-1] {
			s += fmt.Sprintf("%d, ", line)
		}
		return s + fmt.Sprintf("and %d", lines[len(lines)-1])
	}
}
