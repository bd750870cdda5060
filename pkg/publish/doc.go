// Package publish assembles the options for a package upload.
//
// Every option can come from the command line or from a TOML config file
// (publish.toml by default):
//
//	author      = "MyTeam"
//	categories  = ["Mods", "Tools"]
//	communities = ["riskofrain2"]
//	nsfw        = false
//	zip         = "build/MyMod.zip"
//	token       = "tss_..."
//
// A value given on the command line always wins. [Resolve] applies the
// precedence rules and is a pure function of its inputs, so the CLI and the
// config loader can be tested separately from it.
package publish
