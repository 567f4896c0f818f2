package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// The 0.x client kept the session in a JSON file next to the config.
// This migrates it into the sqlite state store on first run.

type legacySession struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

var terminalCheck = func(stdin io.Reader, stdout io.Writer) bool {
	return isTerminalReader(stdin) && isTerminalWriter(stdout)
}

func legacySessionPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(configDir, "kuke", "session.json")
}

func maybeOfferMigration(store *Store, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	legacyPath := legacySessionPath()
	if !fileExists(legacyPath) {
		return nil
	}
	if _, ok, err := store.Session(); err != nil {
		return err
	} else if ok {
		return nil
	}
	if !terminalCheck(stdin, stdout) {
		fmt.Fprintf(stderr, "Legacy session found at %s. Run kuke interactively to migrate.\n", legacyPath)
		return nil
	}
	fmt.Fprint(stdout, "Migrate saved login from the previous kuke client? [y/N]: ")
	reader := bufio.NewReader(stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		return nil
	}
	if err := migrateLegacySession(store, legacyPath); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Migration complete.")
	return nil
}

func migrateLegacySession(store *Store, legacyPath string) error {
	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return err
	}
	var legacy legacySession
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	session := Session{Token: legacy.Token, UserID: legacy.UserID, Username: legacy.Username}
	if session.Token != "" {
		if err := store.SaveSession(session); err != nil {
			return err
		}
	}
	return os.Remove(legacyPath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
