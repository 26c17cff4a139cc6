// Package async provides utilities for parallel task execution with
// error collection.
//
// [RunParallel] executes independent operations concurrently and reports
// the first failure. The inventory refresh uses it to read the provider
// catalog listings side by side.
package async
