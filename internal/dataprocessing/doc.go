// Package dataprocessing implements the Casco Bay observation pipeline:
// loading per-year deployment files (keeping only the hourly median
// columns), cleaning the concatenated series against the curated
// exclusion policy, converting dissolved-oxygen units, and the two-pass
// thermal correction of pCO2.
//
// Every transform is a pure function of the in-memory series; nothing is
// incremental or streaming. The thermal corrector in particular depends
// on whole-series means and is only well-defined after cleaning has
// finished.
package dataprocessing
