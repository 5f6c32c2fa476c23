// Package pagination implements best-effort full enumeration of paginated
// API endpoints whose pagination contract is unknown or absent.
//
// The Gigboard API exposes list endpoints that accept a limit parameter but
// document no paging scheme. The enumerator discovers one experimentally:
//
//  1. Direct-limit probe: request descending page sizes (500..200). A
//     response shorter than the requested size is the complete result set.
//     A response of exactly the requested size is treated as truncated and
//     becomes the base page for discovery.
//  2. Scheme discovery: candidate schemes (offset, zero-based page,
//     one-based page) are tried in fixed order. A scheme is abandoned when
//     a page comes back empty, errors, or merges zero new items (the server
//     is repeating page 1). The first scheme that contributes new items is
//     adopted; the rest are never tried.
//
// "No growth" and "short page" are the only reliable termination signals;
// a hard cap bounds the collected set regardless of how many pages the
// server claims to have. Requests within one enumeration are strictly
// sequential because both signals depend on the merge state so far.
//
// Example usage:
//
//	enum := pagination.NewEnumerator(fetchArtistsPage,
//		func(a api.Artist) string { return a.ID },
//		pagination.DefaultConfig(), logger)
//	artists, err := enum.FetchAll(ctx)
package pagination
