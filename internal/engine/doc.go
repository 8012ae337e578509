// Package engine parses BibTeX source and formats records with citation styles.
//
// It produces two independent views of the same source:
//
//	ParseRaw         every field of every entry, unnormalized
//	ParseNormalized  CSL-like records (typed names, date-parts, mapped variables)
//
// Fields outside the BibTeX-to-CSL mapping are dropped from normalized
// records; callers that need them reconcile against the raw view by key.
//
// Styles are html/template programs executed once per record. The engine
// wraps each rendered entry in a <div class="csl-entry"> container.
// RenderBatch numbers records in the order given, so numeric styles depend
// on the caller passing entries in display order.
package engine
