// Package types holds the interfaces and value types shared across modot
// packages. Keeping them here avoids import cycles between the settings
// engine, the install pipeline, and the command boundary.
package types
