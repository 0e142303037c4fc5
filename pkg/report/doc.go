// Package report assembles the complete per-user inspection document.
//
// # Overview
//
// The report package orchestrates parallel collection of the individual
// probes (unit directories, service/socket/timer listings, manager status,
// login sessions, cgroup tallies) and produces a structured Report that can
// be rendered for the terminal or serialized for export.
//
// # Ordering contract
//
// Identity resolution runs strictly before any probe, since every probe is
// scoped to the resolved user. The probes themselves are independent and
// run in parallel. Summary derivation runs strictly after every probe has
// completed, over the assembled report only.
//
// # Degradation
//
// A probe whose underlying query fails degrades its own section (empty
// list, unknown linger, synthetic manager status) without failing the
// capture. Only two things abort a capture: the invoking user cannot be
// resolved, or the context is canceled.
//
// # Usage
//
//	builder := &report.Builder{Version: version.Version}
//	rep, err := builder.Capture(ctx)
//	if err != nil {
//	    log.Fatalf("capture failed: %v", err)
//	}
//	fmt.Println(rep.Summary.Manager.Running)
package report
