package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ConfigureInteractive allows users to interactively configure the system
func ConfigureInteractive(cfg *Config, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		fmt.Fprintln(out, "\n⚙️  Configuration Menu:")
		fmt.Fprintln(out, "1. View Current Configuration")
		fmt.Fprintln(out, "2. Configure Server & Logging")
		fmt.Fprintln(out, "3. Configure Features")
		fmt.Fprintln(out, "4. Save & Exit")
		fmt.Fprintln(out, "5. Exit Without Saving")
		fmt.Fprint(out, "Select option: ")

		choice, err := reader.ReadString('\n')
		if err != nil && choice == "" {
			return err
		}
		choice = strings.TrimSpace(choice)

		switch choice {
		case "1":
			DisplayConfiguration(cfg, out)
		case "2":
			configureServer(cfg, reader, out)
		case "3":
			configureFeatures(cfg, reader, out)
		case "4":
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(out, "❌ %v\n", err)
				continue
			}
			if err := SaveConfig(cfg, ""); err != nil {
				fmt.Fprintf(out, "❌ Error saving config: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "✅ Configuration saved successfully!")
			return nil
		case "5":
			return nil
		default:
			fmt.Fprintln(out, "❌ Invalid option")
		}
	}
}

// DisplayConfiguration shows current configuration
func DisplayConfiguration(cfg *Config, out io.Writer) {
	fmt.Fprintln(out, "\n📋 Current Configuration:")
	if cfg.Source != "" {
		fmt.Fprintf(out, "Loaded from: %s\n", cfg.Source)
	} else {
		fmt.Fprintln(out, "Loaded from: built-in defaults")
	}

	fmt.Fprintln(out, "\n=== Server ===")
	fmt.Fprintf(out, "Address: %s\n", cfg.Server.Addr)
	fmt.Fprintf(out, "Read Timeout: %ds\n", cfg.Server.ReadTimeoutSeconds)
	fmt.Fprintf(out, "Write Timeout: %ds\n", cfg.Server.WriteTimeoutSeconds)

	fmt.Fprintln(out, "\n=== Logging ===")
	fmt.Fprintf(out, "Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "Format: %s\n", cfg.Logging.Format)

	fmt.Fprintln(out, "\n=== Features ===")
	fmt.Fprintf(out, "API Auth: %v\n", enabledStr(cfg.Auth.Enabled))
	fmt.Fprintf(out, "Token Lifetime: %dh\n", cfg.Auth.TokenHours)
	fmt.Fprintf(out, "Run Journal: %v\n", enabledStr(cfg.Journal.Enabled))
	fmt.Fprintf(out, "Journal Listing Limit: %d\n", cfg.Journal.RecentLimit)
}

func configureServer(cfg *Config, reader *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "\n🖥️  Configure Server & Logging (press Enter to keep current):")

	fmt.Fprintf(out, "Current address: %s\n", cfg.Server.Addr)
	fmt.Fprint(out, "New address: ")
	input, _ := reader.ReadString('\n')
	if v := strings.TrimSpace(input); v != "" {
		cfg.Server.Addr = v
	}

	fmt.Fprintf(out, "Current read timeout: %ds\n", cfg.Server.ReadTimeoutSeconds)
	fmt.Fprint(out, "New read timeout (seconds): ")
	input, _ = reader.ReadString('\n')
	if val, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && val > 0 {
		cfg.Server.ReadTimeoutSeconds = val
	}

	fmt.Fprintf(out, "Current write timeout: %ds\n", cfg.Server.WriteTimeoutSeconds)
	fmt.Fprint(out, "New write timeout (seconds): ")
	input, _ = reader.ReadString('\n')
	if val, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && val > 0 {
		cfg.Server.WriteTimeoutSeconds = val
	}

	fmt.Fprintf(out, "Current log level: %s\n", cfg.Logging.Level)
	fmt.Fprint(out, "New log level (debug/info/warn/error): ")
	input, _ = reader.ReadString('\n')
	switch v := strings.ToLower(strings.TrimSpace(input)); v {
	case "debug", "info", "warn", "error":
		cfg.Logging.Level = v
	}

	fmt.Fprintf(out, "Current log format: %s\n", cfg.Logging.Format)
	fmt.Fprint(out, "New log format (console/json): ")
	input, _ = reader.ReadString('\n')
	switch v := strings.ToLower(strings.TrimSpace(input)); v {
	case "console", "json":
		cfg.Logging.Format = v
	}

	fmt.Fprintln(out, "✅ Server settings updated")
}

func configureFeatures(cfg *Config, reader *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "\n🚀 Configure Features:")
	fmt.Fprintf(out, "1. API Auth: %s\n", enabledStr(cfg.Auth.Enabled))
	fmt.Fprintf(out, "2. Run Journal: %s\n", enabledStr(cfg.Journal.Enabled))
	fmt.Fprint(out, "Select feature to toggle (1-2) or press Enter to skip: ")

	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)

	switch choice {
	case "1":
		cfg.Auth.Enabled = !cfg.Auth.Enabled
		fmt.Fprintf(out, "✅ API Auth: %s\n", enabledStr(cfg.Auth.Enabled))
		if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
			fmt.Fprintln(out, "⚠️  Set JWT_SECRET_KEY before starting the API")
		}
	case "2":
		cfg.Journal.Enabled = !cfg.Journal.Enabled
		fmt.Fprintf(out, "✅ Run Journal: %s\n", enabledStr(cfg.Journal.Enabled))
	default:
		fmt.Fprintln(out, "No changes made")
	}
}

func enabledStr(enabled bool) string {
	if enabled {
		return "✅ Enabled"
	}
	return "❌ Disabled"
}
