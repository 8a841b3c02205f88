// Package hcl implements the config.Loader and config.Converter
// interfaces for HCL configuration files. It parses capability manifests
// and powerup instance files, translates them into the format-agnostic
// config model, and decodes setting values into the Go structs capability
// modules declare.
package hcl
