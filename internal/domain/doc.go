// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/project, domain/board,
// domain/task, domain/comment, domain/access). This root package holds the
// sentinel errors and validation types shared across all entities.
package domain
