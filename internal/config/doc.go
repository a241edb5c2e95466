// Package config loads the bootstrap configuration of the configuration
// server and the configctl client.
//
// Sources are merged field by field; the first source that sets a field
// wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON bootstrap file
//  4. Built-in fallbacks
//
// The merged result is validated with go-playground/validator struct tags.
// [LoadDefaultsOverlay] reads the optional file layered over the built-in
// default options of the configuration document itself.
package config
