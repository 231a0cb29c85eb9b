// Package order models order data at the three stages the service sees it:
//
//   - RawOrder: an untyped CSV row as it arrives in the landing directory
//   - Order: a cleaned warehouse row with typed fields and a derived order value
//   - Record: the (region, order value) pair the region ranking consumes
//
// Records and orders are immutable once constructed and must be created through
// their constructors; zero values fail validation.
package order
