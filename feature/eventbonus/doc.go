// Package eventbonus implements the event calculators.
//
// Bonuses are computed in tenths of a percent so the master rank table
// (12.5%, 0.2%, ...) stays exact, and reported as percentages.
//
// # Routes
//
//   - POST /api/event-bonus/team: per-card and total bonus of a team.
//   - POST /api/event-bonus/points: event points of one play.
//   - POST /api/event-bonus/plays: plays and energy needed to reach a target.
package eventbonus
