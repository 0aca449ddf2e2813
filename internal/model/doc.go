// Package model defines the core data structures shared across siteaudit:
// crawled pages, crawl results, redirect audit rows, SEO check rows, and
// run history records.
//
// Design decision: Models are plain structs with no behavior beyond small
// derivations (pathname reduction, outcome classification) because:
//  1. They cross package boundaries constantly (crawler -> report -> database)
//  2. Serialization (JSON, CSV, SQL) works best on passive data
//  3. Business logic lives in the packages that own the workflow
package model
