// SPDX-License-Identifier: MIT

// Package instance reads, writes and generates TSP instance files.
//
// An instance is either an explicit symmetric cost table (Cost) or a list of
// planar points (Points) whose rounded Euclidean distances form the table.
// Four encodings are supported:
//
//   - JSON, YAML and TOML, mapping File field by field;
//   - plain text: the city count N followed by N×N numbers, whitespace
//     separated, with '#' starting a comment line.
//
// Load and Save pick the encoding from the file extension (.json, .yaml,
// .yml, .toml, anything else is text). Generate builds deterministic random
// Euclidean instances for tests and benchmarks.
package instance
