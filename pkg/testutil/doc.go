// Package testutil provides utilities for testing hermes components.
//
// Key components:
//   - TestEnvironment: isolates XDG directories and HERMES_ variables and
//     provides a filesystem for journals
//   - WriteConfig: writes config files to a temp directory
//
// Usage guidelines:
//   - Use EnvMemoryOnly unless the code under test reads real files
//   - All test data should be defined inline, not in external files
package testutil
