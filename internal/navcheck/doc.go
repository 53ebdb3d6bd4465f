// Package navcheck validates site navigation models.
//
// Validate checks the structural invariants of a site.Config and reports
// every violation at once, with a path to the offending field such as
// "sidebar[0].items[1].link". ResolveLinks is a separate, non-fatal pass
// that checks root-relative links against the set of known site paths, and
// Inconsistencies compares site variants for authoring slips (casing,
// diverging targets, reused targets). None of the passes modify their input.
package navcheck
