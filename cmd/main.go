package main

import (
	"github.com/cristalhq/acmd"
)

// cli: https://github.com/cristalhq/acmd
func main() {
	cmds := []acmd.Command{
		{
			Name:        "run",
			Description: "Run relay rules from a config file",
			ExecFunc:    runAsConfigServer,
		},
		{
			Name:        "forward",
			Description: "Run a single relay: <listener> <destination>...",
			ExecFunc:    runAsForwardServer,
		},
		{
			Name:        "config-gen",
			Description: "Generate a sample config file",
			ExecFunc:    runConfigGenerate,
		},
		{
			Name:        "config-verify",
			Description: "Verify a config file without serving",
			ExecFunc:    runConfigVerify,
		},
	}
	r := acmd.RunnerOf(cmds, acmd.Config{
		AppName:        "udprelay",
		AppDescription: "UDP relay: receive on one address, retransmit to a fixed destination list",
		PostDescription: `Examples:

  udprelay forward 10.1.1.10:4000 127.0.0.1:4001
  udprelay forward 10.1.1.10:4000 127.0.0.1:4001 [::1]:4002
  udprelay forward 224.10.10.10:4000 10.1.1.11:4000
  udprelay forward 224.10.10.10:4000/192.168.1.10 127.0.0.1:4001
  udprelay forward [ff05::1]:4000/2 [::1]:4001
  udprelay run config.toml`,
		Version: "2026.1",
	})
	if err := r.Run(); err != nil {
		r.Exit(err)
	}
}
