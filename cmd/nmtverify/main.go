package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

/*
	nmtverify checks namespaced Merkle tree proofs against a trusted root.
	Proofs are read from a file in JSON or protobuf encoding, roots, namespaces
	and leaves are given as hex strings. The process exits with a non-zero
	status when a proof is rejected.

	./nmtverify --namespace-size 8 namespace --proof proof.json \
		--root <hex> --namespace 0000000000000001 --leaf <hex> --leaf <hex>
*/

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nmtverify: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	proofFlag := &cli.StringFlag{
		Name:     "proof",
		Aliases:  []string{"p"},
		Usage:    "path to the encoded namespace proof",
		Required: true,
	}
	checkFlags := []cli.Flag{
		proofFlag,
		&cli.StringFlag{
			Name:     "root",
			Aliases:  []string{"r"},
			Usage:    "hex encoded trusted root, min || max || digest",
			EnvVars:  []string{"NMTVERIFY_ROOT"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "namespace",
			Aliases:  []string{"n"},
			Usage:    "hex encoded namespace ID the leaves belong to",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "leaf",
			Aliases: []string{"l"},
			Usage:   "hex encoded raw leaf data without the namespace, in order; repeat for every leaf",
		},
	}

	return &cli.App{
		Name:      "nmtverify",
		Usage:     "verify namespaced Merkle tree proofs",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the path to a yaml config file",
				EnvVars: []string{"NMTVERIFY_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "proof encoding, json or proto. Overwrites value from the config file if provided.",
				EnvVars: []string{"NMTVERIFY_FORMAT"},
			},
			&cli.IntFlag{
				Name:    "namespace-size",
				Usage:   "size of the namespace IDs in bytes. Overwrites value from the config file if provided.",
				EnvVars: []string{"NMTVERIFY_NAMESPACE_SIZE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "zerolog level, e.g. debug, info, warn. Overwrites value from the config file if provided.",
				EnvVars: []string{"NMTVERIFY_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "range",
				Usage:  "verify that the leaves are exactly the leaves of the proven range",
				Flags:  checkFlags,
				Action: runRange,
			},
			{
				Name:   "namespace",
				Usage:  "verify that the leaves are all leaves of the namespace, or that it is absent",
				Flags:  checkFlags,
				Action: runNamespace,
			},
			{
				Name:   "inspect",
				Usage:  "print the content of a proof",
				Flags:  []cli.Flag{proofFlag},
				Action: runInspect,
			},
		},
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logout := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(logout).
		With().Timestamp().Logger().
		Level(lvl)
}
