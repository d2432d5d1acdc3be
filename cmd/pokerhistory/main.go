package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Header  HeaderCmd        `cmd:"" help:"List hand headers without parsing bodies"`
	Parse   ParseCmd         `cmd:"" help:"Parse hands and print them as JSON"`
	Show    ShowCmd          `cmd:"" help:"Pretty-print parsed hands"`
	Export  ExportCmd        `cmd:"" help:"Export hands as PHH files"`
	Stats   StatsCmd         `cmd:"" help:"Summarise an archive of hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerhistory"),
		kong.Description("Parse Full Tilt and PokerStars hand histories"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
