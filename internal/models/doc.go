// Package models defines the core domain models for Health Coach.
//
// # Models
//
//   - User: an account, its role and the profile attributes used to derive
//     metrics (height, birth date, gender)
//   - Sample: one dated body-composition measurement
//   - ResetToken: a single-use password reset token
//   - Assessment: the four-category evaluation returned by the AI provider
//
// # Design Principles
//
//  1. Optional measurements are pointers: nil means unknown, never zero.
//  2. Dates without time-of-day (record date, birth date) are stored as
//     YYYY-MM-DD strings and parsed with DateLayout.
//  3. Relationships use ID strings instead of pointers.
package models
