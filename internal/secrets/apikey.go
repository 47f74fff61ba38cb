// Package secrets keeps API credentials in the OS keychain instead of the
// config file or the sqlite database.
package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "jobpilot"

	GSearchAccount  = "jobpilot:gsearch:api_key"
	TelegramAccount = "jobpilot:telegram:bot_token"
)

func Get(account string) (string, error) {
	v, err := keyring.Get(KeyringService, account)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return "", errors.New("secret is empty")
	}
	return v, nil
}

func Set(account, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	return keyring.Delete(KeyringService, account)
}
