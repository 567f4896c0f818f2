package main

import (
	"errors"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

var copyToClipboard = clipboard.WriteAll

func defaultOpenURL(target string) error {
	return defaultOpenURLForOS(runtime.GOOS, target)
}

func defaultOpenURLForOS(goos string, target string) error {
	if target == "" {
		return errors.New("empty url")
	}
	cmdName, args := openCommandForOS(goos, target)
	if cmdName == "" {
		return errors.New("unsupported platform")
	}
	cmd := exec.Command(cmdName, args...)
	return cmd.Start()
}

func openCommandForOS(goos string, target string) (string, []string) {
	if goos == "unsupported" {
		return "", nil
	}
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
