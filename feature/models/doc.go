// Package models defines the GORM models shared by every feature.
//
// # Entities
//
//   - Unit and Character: static master data, seeded by Seed.
//   - FurnitureTag, FurnitureGroup, Furniture and FurnitureReaction: the
//     furniture catalogue maintained from the admin API.
//   - FurnitureGroupExcludedCombination: a character combination whose
//     checks are not shared across the furniture of a group.
//   - User, UserReactionCheck and Setting: per-user state.
//
// String primary keys are UUIDv4 values assigned in BeforeCreate.
//
// # Combination Keys
//
// CombinationKey normalises a set of character IDs (de-duplicated, sorted,
// comma joined). Two reactions, or a reaction and an excluded combination,
// describe the same combination exactly when their keys are equal.
//
// # Schema
//
// AutoMigrate creates the schema from the models (sqlite and tests). MySQL
// deployments use the SQL migrations embedded in core/database, which
// declare the same tables.
package models
