// Package tabular reads and writes the club spreadsheets ("Mannschaften.csv", "Spieler.csv").
//
// Each file is checked against an explicit column schema once, when its header is read.
// Rows come back as typed records ([TeamRow], [PlayerRow]) carrying their data row index;
// rows that cannot be mapped onto the header are returned as [RowError] values instead of
// failing the whole file.
//
// The player file has one canonical schema. The older column names ("Nachname",
// "Verein_angezeigt") are only accepted when [PlayerSchema.Legacy] is set.
package tabular
