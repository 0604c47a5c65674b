// Package reconcile turns the two independently sourced AFS lists into a
// consistent pair of City and Airport rows with no dangling references.
//
// The flow for one sync pass is:
//
//	m := reconcile.BuildCityMap(cities)
//	reconcile.WriteCities(ctx, w, m)
//	reconcile.ReconcileAirports(ctx, w, airports, m)
//
// BuildCityMap dedups the authoritative city list by normalized key, last record
// wins. ReconcileAirports resolves each airport's city through the same key and
// synthesizes a City for airports whose city is missing from the list.
//
// Writes are best effort per row: an error matching refdata.ErrConstraint is
// counted as skipped and the batch continues. Any other error aborts.
package reconcile
