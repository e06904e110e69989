// Package cms provides a reusable content-management backend for an
// organizational website: homepage content blocks, a team member directory,
// per-school enrollment statistics, media uploads, and transactional or bulk
// email sending.
//
// It exposes a single Service interface that validates input, applies
// defaults, and delegates to a Repository for persistence, a MediaStore for
// uploads, and a Mailer for delivery. Implementations of repositories (e.g.,
// memory, Postgres), media stores (memory, S3-compatible hosts), and mailers
// (memory, SMTP) are provided under subpackages.
//
// Enrollment totals are a derived view: TotalEnrollment recomputes the sum of
// all grade/gender counters on every call and is never stored, so it cannot
// go stale when individual counters change.
package cms
