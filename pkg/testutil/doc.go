// Package testutil provides small assertion helpers shared by the test
// suites. Heavier assertions use testify directly.
package testutil
