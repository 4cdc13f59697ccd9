package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-sweep/internal/game"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// setupLogging points the game logger at a rotating JSON file. The terminal
// belongs to the UI, so nothing is written to stdout.
func setupLogging(level string) (string, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return "", fmt.Errorf("invalid log level: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	path := filepath.Join(homeDir, ".config", "go-sweep", "go-sweep.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("could not create log directory: %w", err)
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      lvl,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return "", fmt.Errorf("could not open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(lvl)
	logger.AddHook(hook)
	game.Log = logger

	return path, nil
}
