// Package hcl implements the config.Loader interface for HCL manifests.
//
// A manifest declares modules and entrypoints:
//
//	module "greeter" {
//	  requires = ["env", "exports"]
//	  factory  = "Greeter"
//	  params = {
//	    greeting = "hello"
//	  }
//	}
//
//	entrypoint "main" {
//	  module = "greeter"
//	}
//
// Blocks from all discovered files are merged into one model in file order,
// so a later module block silently overwrites an earlier one with the same
// name. The reserved dependency spelling "exports" is passed through here and
// translated into the synthetic exports dependency by the registry.
package hcl
