// Package models defines the roster records exchanged between the club spreadsheets and the team files.
//
// The package contains four record types:
//
//   - [Player] : one athlete, or a synthetic placeholder ("Platzhalter") filling a minimum roster
//   - [TeamMetadata] : the general ("Allgemein") block of a team file
//   - [Team] : a team ("Mannschaft") with its metadata and ordered players
//   - [Club] : a club ("Verein") owning the teams built for it in one run
//
// Player ordering is computed by [Team.Ordered], which never touches the stored list;
// callers that want the new order persisted call [Team.Commit].
package models
