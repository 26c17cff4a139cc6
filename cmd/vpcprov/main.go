// Package main is the entry point for the vpcprov CLI.
//
// vpcprov provisions virtual server instances on IBM Cloud VPC. It drives a
// provisioning request through the pre-provision sequence, submits the
// instance-creation document and polls the instance until it is running,
// keeping a local inventory of the account resources a request can refer to.
//
// Commands: provision, status, options, request, tasks, inventory.
//
// For detailed usage information, run:
//
//	vpcprov --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/vpcprov/cmd/vpcprov/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
