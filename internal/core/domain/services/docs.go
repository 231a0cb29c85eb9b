// Package services provides domain services that operate on collections of orders
// rather than on a single aggregate.
//
// The package includes:
//   - RegionAverageRanker: groups order records by region and ranks regions by
//     their mean order value
//   - OrderCleaner: turns raw landing rows into typed, de-duplicated orders
//
// Both services are pure: they perform no I/O and hold no mutable state between calls.
package services
