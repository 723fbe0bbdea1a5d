package cmd

import (
	"errors"
	"fmt"

	"github.com/aaearon/check-secunet/internal/config"
	"github.com/aaearon/check-secunet/internal/konnektor"
	"github.com/aaearon/check-secunet/internal/ui"
	"github.com/cyberark/idsec-sdk-golang/pkg/common"
	"github.com/spf13/cobra"
)

// newKonnektorSession is the production sessionFactory.
func newKonnektorSession(opts konnektor.ClientOptions) konnektorSession {
	return konnektor.NewService(opts, common.GetLogger("check-secunet", -1))
}

// runCheckWithDeps performs one check run: login, the query selected by -k,
// output, logout.
func runCheckWithDeps(cmd *cobra.Command, newSession sessionFactory, prompt passwordPrompter) error {
	keyFlag, _ := cmd.Flags().GetString("key")
	if keyFlag == "" {
		return fmt.Errorf("-k is required, must be one of: %s", konnektor.KeyNames())
	}
	key, err := konnektor.ParseKey(keyFlag)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := config.Validate(cfg, string(key)); err != nil {
		return err
	}

	timeout, err := config.ParseTimeout(cfg)
	if err != nil {
		return err
	}

	if cfg.Password == "" && cfg.Username != "" && prompt != nil {
		pw, err := prompt(cfg.Username)
		switch {
		case errors.Is(err, ui.ErrNotInteractive):
			log.Info("No password configured and no terminal attached, sending an empty password")
		case err != nil:
			return err
		default:
			cfg.Password = pw
		}
	}

	if cfg.DisableCertVerify {
		log.Info("TLS certificate verification is disabled for %s", cfg.URL)
	}

	session := newSession(konnektor.ClientOptions{
		BaseURL:            cfg.URL,
		InsecureSkipVerify: cfg.DisableCertVerify,
		Timeout:            timeout,
	})

	ctx := cmd.Context()

	log.Info("Logging in to %s as %q...", cfg.URL, cfg.Username)
	if err := session.Login(ctx, cfg.Username, cfg.Password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Logout is best-effort cleanup and never changes the outcome of the run.
	defer func() {
		if err := session.Logout(ctx); err != nil {
			log.Info("Logout failed: %v", err)
		}
	}()

	log.Info("Running %s query...", key)
	result, err := konnektor.Run(ctx, session, key, konnektor.QueryParams{
		Tenant:    cfg.Tenant,
		ICCSNSmcB: cfg.ICCSNSmcB,
	})
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", key, err)
	}

	return writeResult(cmd.OutOrStdout(), cfg.Output, key, result)
}

// resolveConfig merges the config file, the environment and the flags, in
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		log.Info("Loading environment from %s", envFile)
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
	}

	cfgPath, _ := flags.GetString("config")
	cfg, err := loadConfigFile(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	stringFlags := map[string]*string{
		"url":        &cfg.URL,
		"username":   &cfg.Username,
		"password":   &cfg.Password,
		"tenant":     &cfg.Tenant,
		"iccsn-smcb": &cfg.ICCSNSmcB,
		"output":     &cfg.Output,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("disable-cert-verify") {
		cfg.DisableCertVerify, _ = flags.GetBool("disable-cert-verify")
	}
	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		cfg.Timeout = d.String()
	}

	return cfg, nil
}

// loadConfigFile reads the YAML config at path, or at the default location
// when path is empty. Without a home directory the default file is skipped.
func loadConfigFile(path string) (*config.Config, error) {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			log.Info("Skipping config file: %v", err)
			return config.DefaultConfig(), nil
		}
		path = p
	}

	log.Info("Loading config from %s", path)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
