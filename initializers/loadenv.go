package initializers

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv loads variables from the given .env files (".env" when none are
// named). A missing file is not an error; the process environment is used as is.
func LoadEnv(logger *zap.Logger, files ...string) error {
	logger.Info("Loading env file", zap.Strings("files", files))
	err := godotenv.Load(files...) // using the joho library to load variables from the .env file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("No env file found, using process environment")
			return nil
		}
		return fmt.Errorf("env not loading: %w", err)
	}
	logger.Info("Env loaded successfully")
	return nil
}
