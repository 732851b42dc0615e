// Package tasks turns club spreadsheets into team files and back.
//
// # Reconciliation
//
// [Engine.Reconcile] joins player rows to team rows on (club, team):
//
//  1. Join: each player row takes the first team row with the same club and team.
//     Rows without a match are reported as [StatusNoTeam].
//  2. Group: a team is created the first time its key is seen, from the matching team row.
//  3. Build: the row becomes a player; a bad birth date drops the row as [StatusBadDate].
//  4. Pad: short rosters get placeholders 1..(MinPlayers-n); numbering continues
//     until at least MinPlaceholders were added. The declared count is max(n, MinPlayers).
//  5. Name: youth teams are named "{team} {club}", all others "{club} {team}".
//
// Every row ends up in the [BatchReport] with its status, so skipped rows can be
// counted instead of only logged.
//
// # Workflows
//
// [Engine] wraps the reconciliation with file handling:
//   - [Engine.Import] : CSV tables → team files + import manifest
//   - [Engine.Rewrite] : one team file, normalized and optionally renamed
//   - [Engine.Correct] : a folder of team files, normalized
//   - [Engine.ExportTeam] : one team file → player CSV
//   - [Engine.ExportAll] : a folder of team files → timestamped player and team CSVs
//   - [Engine.NewTeam] : placeholder-only team file
//
// # Progress Reporting
//
// Batch workflows accept an optional channel of [ProgressUpdate]. Sends never
// block; updates are dropped when the channel is full.
package tasks
