package main

import (
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	New      NewCmd           `cmd:"" help:"Deal a new game from the config, replacing any saved game"`
	Status   StatusCmd        `cmd:"" help:"Show the current hand"`
	Act      ActCmd           `cmd:"" help:"Act for the player on turn"`
	Advance  AdvanceCmd       `cmd:"" help:"Close the betting round and move to the next street"`
	Showdown ShowdownCmd      `cmd:"" help:"Go to showdown once no more betting is possible"`
	Settle   SettleCmd        `cmd:"" help:"Pay out the pots to the chosen winners"`
	Award    AwardCmd         `cmd:"" help:"Award the pot to the last player standing"`
	Next     NextCmd          `cmd:"" help:"Start the next hand"`
	Undo     UndoCmd          `cmd:"" help:"Undo the last log entry of the hand"`
	Reset    ResetCmd         `cmd:"" help:"Delete the saved game"`
	History  HistoryCmd       `cmd:"" help:"Export the current hand as a PHH record"`
	Simulate SimulateCmd      `cmd:"" help:"Play bot games and check the engine's bookkeeping"`
}

func main() {
	var cli CLI
	cli.out = os.Stdout

	ctx := kong.Parse(&cli,
		kong.Name("pokerdealer"),
		kong.Description("Dealer-side bookkeeping for no-limit hold'em hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
