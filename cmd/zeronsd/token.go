package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/markdingo/zeronsd/member"
)

var errNoToken = errors.New("No ZeroTier Central token: supply --token, $" +
	member.TokenEnv + " or --token-file")

// resolveToken finds the Central API token. An explicit value wins, then the environment,
// then the contents of the token file. getenv is os.Getenv outside of tests.
func resolveToken(explicit, path string, getenv func(string) string) (string, error) {
	if tok := strings.TrimSpace(explicit); len(tok) > 0 {
		return tok, nil
	}

	if tok := strings.TrimSpace(getenv(member.TokenEnv)); len(tok) > 0 {
		return tok, nil
	}

	if len(path) > 0 {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("--token-file: %w", err)
		}
		tok := strings.TrimSpace(string(b))
		if len(tok) == 0 {
			return "", fmt.Errorf("--token-file %s is empty", path)
		}
		return tok, nil
	}

	return "", errNoToken
}
