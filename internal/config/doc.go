// Package config defines the format-agnostic configuration model for the
// module system, plus the interface a format-specific loader (such as the
// HCL adapter) must implement to produce it.
//
// Keeping the model free of parser types lets the registry and loader stay
// ignorant of where a module declaration came from.
package config
