package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/cyclecast/internal/security"
)

func RunGenerateSecretCommand(stdout io.Writer) error {
	secret, err := security.GenerateSecretKey(security.DefaultSecretKeyLength)
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}

	_, err = fmt.Fprintf(stdout, "SECRET_KEY=%s\n", secret)
	return err
}
