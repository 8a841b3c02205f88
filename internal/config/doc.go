// Package config defines the format-agnostic configuration model for a
// Power-Up: the capability manifests that bind extension points to Go
// handlers, and the instance block that tunes a deployment (host origin,
// asset directory, per-capability settings). Loading and translating a
// concrete format into this model is delegated to a Loader implementation
// such as the hcl package.
package config
