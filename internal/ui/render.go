package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mannschaft/internal/formatter"
	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/tasks"
)

// RenderReport summarizes a batch run: written files, dropped rows and skipped files.
func RenderReport(report *tasks.BatchReport) string {
	var b strings.Builder

	b.WriteString(Styles.OK(fmt.Sprintf("✓ %s complete", report.Command)))
	fmt.Fprintf(&b, "\nRun: %s\nFiles written: %d", report.RunID, len(report.Files))
	if len(report.Rows) > 0 {
		fmt.Fprintf(&b, "\nRows: %d accepted, %d skipped", report.Accepted(), report.Skipped())
	}

	var dropped []tasks.RowOutcome
	for _, row := range report.Rows {
		if row.Status != tasks.StatusAccepted {
			dropped = append(dropped, row)
		}
	}
	if len(dropped) > 0 {
		b.WriteString("\n\n" + Styles.Warn(fmt.Sprintf("Skipped %d rows:", len(dropped))))
		for _, row := range dropped {
			b.WriteString("\n  • " + Styles.Status(row.Status, row.String()))
		}
	}

	writeSkippedFiles(&b, report.SkippedFiles)
	return b.String()
}

// RenderExport summarizes [tasks.Engine.ExportAll].
func RenderExport(result *tasks.ExportResult) string {
	var b strings.Builder
	b.WriteString(Styles.OK("✓ export complete"))
	fmt.Fprintf(&b, "\nTeams: %d\nPlayers: %d\n  %s\n  %s", result.Teams, result.Players, result.PlayersFile, result.TeamsFile)
	writeSkippedFiles(&b, result.SkippedFiles)
	return b.String()
}

// RenderTeam lists the metadata and players of a team.
func RenderTeam(team *models.Team) string {
	var b strings.Builder
	m := team.Metadata

	b.WriteString(Styles.Title(team.FileID))
	fmt.Fprintf(&b, "\nName: %s\nLiga: %s (%s)\nBezirk: %s\nSpielführer: %s\nBetreuer: %s\nAnzahl Spieler: %d\n",
		m.Name, m.League, m.LeagueClass, m.District, m.Captain, m.Supervisor, team.DeclaredPlayers())

	for i, p := range team.Players() {
		line := fmt.Sprintf("%2d. %s", i, p)
		if p.IsPlaceholder() {
			line = Styles.Placeholder(line)
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

// RenderFolder lists the teams of a folder, one line each.
func RenderFolder(folder *formatter.Folder) string {
	var b strings.Builder
	b.WriteString(Styles.Title(fmt.Sprintf("%d teams in %s", len(folder.Teams), folder.Dir)))
	for _, team := range folder.Teams {
		item := teamItem{team: team}
		fmt.Fprintf(&b, "\n%s  %s", item.Title(), Styles.Help(item.Description()))
	}
	writeSkippedFiles(&b, folder.Skipped)
	return b.String()
}

func writeSkippedFiles(b *strings.Builder, skipped []formatter.SkippedFile) {
	if len(skipped) == 0 {
		return
	}
	b.WriteString("\n\n" + Styles.Warn(fmt.Sprintf("Skipped %d files:", len(skipped))))
	for _, f := range skipped {
		fmt.Fprintf(b, "\n  • %s: %s", f.Path, f.Reason)
	}
}
