// Package codegen renders and writes the generated migrations file.
//
// The generated file contains, in order:
//   - the standard "Code generated ... DO NOT EDIT." line and a warning
//     header with the generation time in Unix seconds
//   - a YAML manifest inside a comment block, delimited by
//     "// migembed:manifest" and "// migembed:end", listing every source
//     file with its version and SHA-256
//   - a function returning one migembed.Migration literal per source file,
//     in the order given to Render
//
// The manifest is what the staleness detector reads back. Files without a
// manifest fall back to counting "Version:" entry markers.
package codegen
