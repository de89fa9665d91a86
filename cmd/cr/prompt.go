package main

import (
	"fmt"
	"os"
	"strings"

	"cr-go/internal/app"
	"cr-go/internal/config"
	"cr-go/internal/encryption"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptSecret reads a secret from the terminal without echo.
// Fails when stdin is not a terminal so scripted runs get a clean error
// instead of hanging.
func promptSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available to prompt for %s", strings.ToLower(label))
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}

	secret := strings.TrimSpace(string(b))
	if secret == "" {
		return "", fmt.Errorf("%s must not be empty", strings.ToLower(label))
	}
	return secret, nil
}

// runConfigKeygen generates the archive encryption key pair, prompting for
// a passphrase to protect the private key.
func runConfigKeygen(cmd *cobra.Command, args []string) error {
	defaults, err := app.GetDefaults()
	if err != nil {
		return fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}

	if enc.IsConfigured() {
		return fmt.Errorf("key pair already exists at %s", cfg.Encryption.PublicKeyPath)
	}

	passphrase, err := promptSecret("Passphrase")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm passphrase")
	if err != nil {
		return err
	}
	if passphrase != confirm {
		return fmt.Errorf("passphrases do not match")
	}

	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("generating keys: %w", err)
	}

	fmt.Printf("Key pair generated.\n")
	fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
	fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
	return nil
}
