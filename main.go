package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/interop"
	"kaspa-wallet-tui/modules"
	"kaspa-wallet-tui/rpc"
	"kaspa-wallet-tui/wallet"
)

const logBufferLimit = 256 << 10

// -------------------- MAIN --------------------

func main() {
	app := &cli.App{
		Name:  "kaspa-wallet-tui",
		Usage: "terminal client for a Kaspa wallet node",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path of the settings file",
				Value: config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:    "node-url",
				Usage:   "wallet node websocket URL, overrides the active node",
				EnvVars: []string{"KNG_NODE_URL"},
			},
			&cli.StringFlag{
				Name:  "network",
				Usage: "network id: mainnet, testnet-10, testnet-11, devnet or simnet",
			},
			&cli.StringFlag{
				Name:  "adaptor-listen",
				Usage: "listen address for companion processes, enables the adaptor",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	configPath := ctx.String("config")
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return err
	}
	if n := ctx.String("network"); n != "" {
		id, err := wallet.ParseNetworkID(n)
		if err != nil {
			return err
		}
		cfg.Network = string(id)
	}
	var nodeURL string
	if node, ok := cfg.ActiveNode(); ok {
		nodeURL = node.URL
	}
	if u := ctx.String("node-url"); u != "" {
		nodeURL = u
	}
	if addr := ctx.String("adaptor-listen"); addr != "" {
		cfg.Adaptor.Enabled = true
		cfg.Adaptor.Listen = addr
	}

	buffer := helpers.NewLogBuffer(logBufferLimit)
	var out io.Writer = io.Discard
	if cfg.Logger {
		out = buffer
	}
	logger := helpers.NewLogger(out)
	if cfg.DeveloperMode {
		logger.SetLevel(log.DebugLevel)
	}

	ch := events.NewChannel()
	client := rpc.New(nodeURL, cfg.NetworkID(), ch, logger)
	in := interop.New(ch, client, logger, client)
	if cfg.Adaptor.Enabled {
		in.Register(interop.NewTransport(cfg.Adaptor.Listen, cfg.Adaptor.AllowedOrigins, in.Adaptor(), logger))
	}

	c := core.New(core.Options{
		Interop:    in,
		Logger:     logger,
		Config:     cfg,
		ConfigPath: configPath,
	},
		modules.NewOverview(),
		modules.NewAccountManager(),
		modules.NewWalletOpen(),
		modules.NewSettings(client),
		modules.NewLogs(buffer),
	)

	logger.Info("starting", "node", nodeURL, "network", cfg.Network, "adaptor", cfg.Adaptor.Enabled)
	in.Start()

	p := tea.NewProgram(newModel(c), tea.WithAltScreen())
	_, runErr := p.Run()

	in.Shutdown()
	ch.Close()
	if err := in.Join(); err != nil {
		logger.Error("background services stopped with an error", "err", err)
	}
	return runErr
}
