// Package migration turns migration source files into migembed.Migration
// descriptors.
//
// Filenames follow <version>-<description>.sql. The name is split on the
// first "-": the prefix must be a base-10 signed 64-bit integer, the rest
// (minus a trailing ".sql") becomes the description. Descriptions may contain
// further dashes. Every parsed migration is a forward (up) migration; the
// filename convention has no way to express direction.
package migration
