package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "loteria"

	// EnvOCRKey overrides the keyring; the usual path on CI runners where
	// no keychain exists.
	EnvOCRKey = "LOTERIA_OCR_KEY"
)

// GetOCRKey resolves the OCR gateway API key: env var first, then keychain.
func GetOCRKey(keyringAccount string) (string, error) {
	if k := strings.TrimSpace(os.Getenv(EnvOCRKey)); k != "" {
		return k, nil
	}

	if strings.TrimSpace(keyringAccount) != "" {
		k, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(k) != "" {
			return k, nil
		}
	}

	return "", errors.New("OCR API key not found (set " + EnvOCRKey + " or store it in the keychain)")
}

func SetOCRKey(keyringAccount, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteOCRKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
