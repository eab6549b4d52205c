package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// overrides флаги командной строки, которые перекрывают переменные окружения
var overrides = map[string]struct {
	env   string
	usage string
}{
	"port":    {env: "PORT", usage: "Server port (overrides PORT environment variable)"},
	"storage": {env: "STORAGE_DRIVER", usage: "Storage driver: postgres or memory (overrides STORAGE_DRIVER)"},
}

// Load читает .env и применяет флаги поверх окружения. Вызывается один раз на процесс.
func Load() error {
	err := godotenv.Load()
	if err != nil {
		return err
	}

	values := make(map[string]*string, len(overrides))
	for name, o := range overrides {
		values[name] = flag.String(name, "", o.usage)
	}
	flag.Parse()

	for name, value := range values {
		if *value == "" {
			continue
		}
		env := overrides[name].env
		if err := os.Setenv(env, *value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", env, err)
		}
	}
	return nil
}
