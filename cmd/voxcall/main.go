// voxcall joins a voice agent call from the command line.
//
// Usage:
//
//	voxcall join <joinURL>          # join an existing call
//	voxcall call --prompt "..."     # create a call, then join it
//	voxcall serve                   # host API only, join via POST /api/join
//	voxcall calls list              # list calls of the account
//
// Configuration comes from config/config.<CONFIG_ENV>.yaml, VOXCALL_*
// environment variables, a .env file and flags.
package main

import (
	"os"

	"github.com/dkeye/voxcall/cmd/voxcall/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
