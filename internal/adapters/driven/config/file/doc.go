// Package file provides the file-based implementation of the
// ConfigStore driven port.
//
// Configuration is stored as TOML in the craftdex config directory and
// written atomically (temp file, then rename) so a crash mid-write
// never leaves a corrupt config behind.
package file
