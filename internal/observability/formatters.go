// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrea/gig-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs the full score breakdown for one job.
func (p *Printer) PrintMatchResult(job *types.JobPosting, match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	if job != nil {
		sb.WriteString(fmt.Sprintf("Job:    %s\n", job.Title))
		if job.Location != "" {
			sb.WriteString(fmt.Sprintf("Where:  %s\n", job.Location))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Score:  %.1f / 100\n\n", match.Score))

	b := match.Breakdown
	components := []struct {
		name  string
		value float64
	}{
		{"Skills", b.SkillsMatch},
		{"Job title", b.JobTitleMatch},
		{"Location", b.LocationMatch},
		{"Job type", b.JobTypeMatch},
		{"Salary", b.SalaryMatch},
		{"Experience", b.ExperienceMatch},
		{"Availability", b.AvailabilityMatch},
		{"Rating bonus", b.RatingBonus},
		{"Recency bonus", b.RecencyBonus},
	}
	for _, c := range components {
		sb.WriteString(fmt.Sprintf("  %-14s %6.2f\n", c.name, c.value))
	}

	if len(match.Reasons) > 0 {
		sb.WriteString("\nWhy this match:\n")
		for _, reason := range match.Reasons {
			sb.WriteString(fmt.Sprintf("  • %s\n", reason))
		}
	}

	p.printBox("MATCH BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoredJobs outputs the top N jobs of a ranked feed with scores
// and the leading match reason.
func (p *Printer) PrintScoredJobs(jobs []types.ScoredJob) {
	if len(jobs) == 0 {
		p.printBox("RANKED FEED", "No jobs to show")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total jobs ranked: %d\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		sj := jobs[i]
		title := sj.Job.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %.1f", sj.Match.Score))
		if sj.Job.Boosted {
			sb.WriteString(" (boosted)")
		}
		sb.WriteString("\n")
		if len(sj.Match.Reasons) > 0 {
			reason := sj.Match.Reasons[0]
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox("RANKED FEED", sb.String())
}

// PrintLimitStatus outputs the daily swipe quota snapshot.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLimitStatus(status *types.SwipeLimitStatus) {
	if status == nil {
		return
	}

	if status.Unlimited() {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "∞ UNLIMITED SWIPES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Remaining: %d of %d\n", status.RemainingSwipes, status.DailyLimit))
	if status.CanSwipe {
		sb.WriteString("Can swipe: yes")
	} else {
		sb.WriteString("Can swipe: no (limit reached)")
	}
	p.printBox("DAILY SWIPE LIMIT", sb.String())
}
