package main

import (
	"github.com/jessevdk/go-flags"
)

type configFlags struct {
	Curve    string `long:"curve" default:"secp256k1" description:"Curve to generate the key pair on (see --list-curves)"`
	KeyFile  string `long:"keyfile" description:"Path to write the generated key file to; stdout when empty"`
	Format   string `long:"format" default:"json" description:"Key file format: json, pem or base58"`
	Mnemonic bool   `long:"mnemonic" description:"Derive the key from a freshly generated BIP-39 mnemonic and print the mnemonic"`
	Encrypt  bool   `long:"encrypt" description:"Encrypt the key file with a password (json format only)"`
	List     bool   `long:"list-curves" description:"Print the supported curve names and exit"`
	Verbose  bool   `short:"v" long:"verbose" description:"Enable debug-level logging"`
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
