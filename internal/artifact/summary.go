package artifact

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sqve/git-artifact/internal/config"
	"github.com/sqve/git-artifact/internal/styles"
	"github.com/sqve/git-artifact/internal/utils"
)

const maxSummaryWidth = 100

type summaryRow struct {
	label string
	value string
}

// renderSummary lays rows out as an aligned table, boxed unless plain
// output is on. width caps the box to the terminal.
func renderSummary(title string, rows []summaryRow, width int) string {
	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.label))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, styles.Render(&styles.Header, title))
	for _, row := range rows {
		label := fmt.Sprintf("%-*s", labelWidth+1, row.label+":")
		lines = append(lines, styles.Render(&styles.Dimmed, label)+" "+row.value)
	}
	body := strings.Join(lines, "\n")

	if config.IsPlain() {
		return body
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if width > 4 {
		box = box.MaxWidth(min(width, maxSummaryWidth))
	}
	return box.Render(body)
}

func (r *Runner) summary(st *State, remote string) string {
	gitignore := r.cfg.Gitignore
	if gitignore == "" {
		gitignore = "(repository .gitignore)"
	}
	push := "yes"
	if r.cfg.DryRun {
		push = "no (dry run)"
	}

	rows := []summaryRow{
		{"Mode", string(r.cfg.Mode)},
		{"Source", r.cfg.Src},
		{"Destination", remote},
		{"Branch", fmt.Sprintf("%s -> %s", st.OriginalBranch, st.DestinationBranch)},
		{"Message", st.Message},
		{"Gitignore", gitignore},
		{"Push", push},
	}
	return renderSummary("git-artifact", rows, utils.GetTerminalWidth())
}
