package migembed

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Generation or check completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Missing or invalid configuration
	ExitParseError     = 11 // A migration filename or file could not be parsed
	ExitWriteError     = 12 // The generated file could not be written
	ExitDirectoryError = 13 // The migrations directory could not be read
	ExitStale          = 15 // check found the generated file out of date
)

const (
	// EnvMigrationsDir names the environment variable holding the SQL source directory.
	EnvMigrationsDir = "MIGRATIONS_DIR"

	// EnvProjectDir names the environment variable holding the project root.
	EnvProjectDir = "PROJECT_DIR"

	// DefaultOutputDir is the artifact directory, relative to the project root.
	DefaultOutputDir = "internal/migrations"

	// DefaultOutputFile is the artifact filename.
	DefaultOutputFile = "migrations_generated.go"

	// DefaultPackageName is the package clause of the generated file.
	DefaultPackageName = "migrations"

	// DefaultFuncName is the generated function returning the migration list.
	DefaultFuncName = "Migrations"

	// DefaultImportPath is the package providing the Migration record type.
	DefaultImportPath = "github.com/vvka-141/migembed/pkg/migembed"

	// MigrationExtension is the only extension the scanner accepts. Matching is case-sensitive.
	MigrationExtension = ".sql"

	// VersionSeparator splits the version prefix from the description.
	VersionSeparator = "-"
)

// Order values select how parsed migrations are ordered in the artifact.
const (
	// OrderVersion sorts by ascending version, keeping scan order for ties.
	OrderVersion = "version"

	// OrderDirectory keeps the directory iteration order.
	OrderDirectory = "directory"
)
