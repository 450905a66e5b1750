package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

type metadata struct {
	log      *zap.Logger
	endpoint string
	contract string
	timeout  time.Duration
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "dev"

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "registry-cli"
	app.Usage = "Asset Registry contract client"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "rpc-endpoint, r",
			EnvVar: "REGISTRY_RPC_ENDPOINT",
			Usage:  "Neo RPC server `URL`",
		},
		cli.StringFlag{
			Name:   "contract, c",
			EnvVar: "REGISTRY_CONTRACT",
			Usage:  "registry contract `ADDRESS` (Neo address or LE hex)",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 30 * time.Second,
			Usage: "dial and request `TIMEOUT`",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug logging",
		},
	}

	walletFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "wallet, w",
			Usage: "*path to the NEP-6 wallet `FILE`",
		},
		cli.StringFlag{
			Name:  "address, a",
			Usage: "*signing account `ADDRESS` from the wallet",
		},
		cli.StringFlag{
			Name:   "password, p",
			EnvVar: "REGISTRY_WALLET_PASSWORD",
			Usage:  " account `PASSWORD`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "deploy",
			Usage:     "deploy the registry contract or update the outdated one given by --contract",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "nef, n",
					Usage: "*compiled contract `FILE`",
				},
				cli.StringFlag{
					Name:  "manifest, m",
					Usage: "*contract manifest `FILE`",
				},
				cli.StringFlag{
					Name:  "committee",
					Usage: " committee multisig `ADDRESS` from the wallet used for updates",
				},
			}, walletFlags...),
			Action: runDeploy,
		},
		{
			Name:   "total",
			Usage:  "print the number of registered assets",
			Action: runTotal,
		},
		{
			Name:      "asset",
			Usage:     "print asset details",
			ArgsUsage: "<id>",
			Action:    runAsset,
		},
		{
			Name:      "owned",
			Usage:     "list assets owned by the account",
			ArgsUsage: "<address>",
			Action:    runOwned,
		},
		{
			Name:      "created",
			Usage:     "list assets created by the account",
			ArgsUsage: "<address>",
			Action:    runCreated,
		},
		{
			Name:      "authorized",
			Usage:     "check whether the account has access to the asset",
			ArgsUsage: "<id> <address>",
			Action:    runAuthorized,
		},
		{
			Name:      "verify",
			Usage:     "compare the given content hash with the registered one",
			ArgsUsage: "<id> <hash>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "encoding, e",
					Value: encodingHex,
					Usage: " hash `ENCODING` [hex|base58]",
				},
			},
			Action: runVerify,
		},
		{
			Name:  "list",
			Usage: "list all registered assets",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "batch, b",
					Value: registry.DefaultIteratorBatch,
					Usage: " number of assets fetched per request",
				},
			},
			Action: runList,
		},
		{
			Name:      "events",
			Usage:     "print registry notifications of the transaction",
			ArgsUsage: "<txhash>",
			Action:    runEvents,
		},
		{
			Name:      "register",
			Usage:     "register a new asset created by the signing account",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "name",
					Usage: "*asset `NAME`",
				},
				cli.StringFlag{
					Name:  "description",
					Usage: " asset `DESCRIPTION`",
				},
				cli.StringFlag{
					Name:  "uri",
					Usage: " asset content `URI`",
				},
				cli.StringFlag{
					Name:  "hash",
					Usage: " content `HASH`",
				},
				cli.StringFlag{
					Name:  "encoding, e",
					Value: encodingHex,
					Usage: " hash `ENCODING` [hex|base58]",
				},
				cli.BoolFlag{
					Name:  "non-transferable",
					Usage: " forbid asset transfers",
				},
			}, walletFlags...),
			Action: runRegister,
		},
		{
			Name:      "transfer",
			Usage:     "transfer the asset owned by the signing account",
			ArgsUsage: "<id> <address>",
			Flags:     walletFlags,
			Action:    runTransfer,
		},
		{
			Name:      "update-metadata",
			Usage:     "replace name, description and URI of the asset",
			ArgsUsage: "<id>",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "name",
					Usage: "*asset `NAME`",
				},
				cli.StringFlag{
					Name:  "description",
					Usage: " asset `DESCRIPTION`",
				},
				cli.StringFlag{
					Name:  "uri",
					Usage: " asset content `URI`",
				},
			}, walletFlags...),
			Action: runUpdateMetadata,
		},
		{
			Name:      "authorize",
			Usage:     "grant access to the asset",
			ArgsUsage: "<id> <address>",
			Flags:     walletFlags,
			Action:    runAuthorize,
		},
		{
			Name:      "deauthorize",
			Usage:     "revoke access to the asset",
			ArgsUsage: "<id> <address>",
			Flags:     walletFlags,
			Action:    runDeauthorize,
		},
	}

	app.Before = func(c *cli.Context) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		if c.GlobalBool("debug") {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}

		log, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		c.App.Metadata["config"] = &metadata{
			log:      log,
			endpoint: c.GlobalString("rpc-endpoint"),
			contract: c.GlobalString("contract"),
			timeout:  c.GlobalDuration("timeout"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if ok {
			_ = m.log.Sync()
		}
		return nil
	}

	return app
}
