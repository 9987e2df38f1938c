package main

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/kaspanet/go-ecsig"
	"github.com/kaspanet/go-ecsig/curves"
	"github.com/kaspanet/go-ecsig/keyserialization"
	"github.com/kaspanet/go-ecsig/logger"
	"github.com/kaspanet/go-ecsig/version"
)

var (
	backend = logger.NewBackend()
	log     = backend.Logger("GNKP")
)

func main() {
	defer backend.Close()

	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "parsing command-line arguments"))
	}

	logLevel := logger.LevelInfo
	if cfg.Verbose {
		logLevel = logger.LevelDebug
	}
	if err := backend.AddLogWriter(os.Stderr, logLevel); err != nil {
		printErrorAndExit(errors.Wrap(err, "setting up logging"))
	}
	log.SetLevel(logLevel)
	log.Debugf("genkeypair version %s", version.Version())

	if cfg.List {
		fmt.Println(strings.Join(curves.Names(), "\n"))
		return
	}

	if err := generate(cfg); err != nil {
		printErrorAndExit(err)
	}
}

func generate(cfg *configFlags) error {
	format, err := keyserialization.FormatByName(cfg.Format)
	if err != nil {
		return err
	}

	onEnd := logger.LogAndMeasureExecutionTime(log, "key generation")
	privateKey, mnemonic, err := newPrivateKey(cfg)
	onEnd()
	if err != nil {
		return err
	}

	if mnemonic != "" {
		fmt.Println("Mnemonic (write this down, it recovers the key):")
		fmt.Println(mnemonic)
	}

	var password []byte
	if cfg.Encrypt {
		password = getPassword("Enter password for the key file:")
		confirmPassword := getPassword("Confirm password:")
		if subtle.ConstantTimeCompare(password, confirmPassword) != 1 {
			return errors.New("Passwords are not identical")
		}
	}

	serialized, err := privateKey.Serialize(format, password)
	if err != nil {
		return err
	}

	publicPEM, err := privateKey.PublicKey().Serialize(keyserialization.FormatPEM)
	if err != nil {
		return err
	}
	fmt.Printf("Public key (%s):\n%s", privateKey.CurveName(), publicPEM)

	if cfg.KeyFile == "" {
		fmt.Printf("%s\n", serialized)
		return nil
	}
	if err := os.WriteFile(cfg.KeyFile, serialized, 0600); err != nil {
		return errors.Wrapf(err, "writing the key file to %s", cfg.KeyFile)
	}
	log.Infof("Wrote the private key into %s", cfg.KeyFile)
	return nil
}

func newPrivateKey(cfg *configFlags) (*ecsig.PrivateKey, string, error) {
	if !cfg.Mnemonic {
		privateKey, err := ecsig.GeneratePrivateKey(cfg.Curve)
		return privateKey, "", err
	}

	mnemonic, err := ecsig.CreateMnemonic()
	if err != nil {
		return nil, "", err
	}
	privateKey, err := ecsig.PrivateKeyFromMnemonic(cfg.Curve, mnemonic, "")
	if err != nil {
		return nil, "", err
	}
	return privateKey, mnemonic, nil
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
