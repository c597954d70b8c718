//go:build prod

package build

var Name = "preventer"
var Version = "v0.0.0-production"
var BuildDate = "unknown"
var Commit = "unknown"
var Mode = ModeProduction
