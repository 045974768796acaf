// Package freightlens provides an in-memory analytics engine for
// transportation shipment data loaded from spreadsheet exports.
//
// Usage:
//
//	raw, _ := ingest.ReadXLSX(file)
//	table := dataset.Normalize(raw)
//
//	sess := session.New(secret)
//	sess.Load(table)
//
//	page := views.Overview(sess)
//
// The pipeline is a chain of pure transformations: a raw header+cell table is
// normalized into a canonical typed table once per source, sidebar filters
// derive zero-copy views over it, and each dashboard view turns a view into
// render-ready metrics, tables, and chart configurations. Chart drawing and
// widget layout are left to the presentation layer.
package freightlens
