// Package lakepath resolves data lake paths without knowing their exact case
// and lists the items under a directory with filtering, ordering and limits.
//
// A data lake is any hierarchical object store that can answer two questions:
// does a path exist as a file or directory, and what lives under a directory.
// Backends (local filesystem, S3, a database catalog) implement Storage and
// the rest of the package works in memory on top of it.
//
// # Key Components
//
//   - Resolver: Walks a path segment by segment, matching every segment
//     case-insensitively and keeping every ambiguous branch alive until the
//     final segment
//   - Filter: A single property predicate such as ContentLength=ge:100,
//     validated and compiled once
//   - ApplyQuery: Filters, orders and caps a slice of items
//   - Service: CheckPath and GetItems, the two operations exposed over HTTP
//   - Reindex: Copies a backend listing into a catalog
//
// # Path Resolution
//
// Resolution first probes the path with its exact casing. Only when that
// fails does the resolver list directories level by level. An empty or "/"
// path resolves to "" (the root) without touching storage.
//
//	resolver := lakepath.NewResolver(storage)
//	p, err := resolver.Resolve(ctx, "RAW/Database/jan", lakepath.KindDirectory)
//	switch {
//	case errors.Is(err, lakepath.ErrNotFound):
//	    // no case-insensitive match
//	case errors.Is(err, lakepath.ErrMultipleDirectoryMatches):
//	    // more than one directory differs only by case
//	}
//
// # Filters
//
// Filters use the form operator:value with the operators eq, ne, lt, gt, le,
// ge and like. like is only valid on string properties and matches a
// case-insensitive regular expression where * stands for any run of
// characters.
//
//	f := lakepath.NewFilter("Name", "like:*.csv")
//	items, err := lakepath.ApplyQuery(items, []lakepath.Filter{f}, "LastModified", true, 10)
//
// See the http package for the REST API and the database package for the
// catalog backend.
package lakepath
