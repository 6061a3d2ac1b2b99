package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Options holds the resolved settings of one `cl` run.
type Options struct {
	RootDir       string
	Extensions    []string
	Ignore        []string
	FileWise      bool
	DirectoryWise bool
	Threads       int
	Format        string
	Gitignore     bool
	Clipboard     bool
	PDFFile       string
	Interactive   bool
	NoProgress    bool
	Verbose       bool
}

// initConfig reads in the config file and LINECOUNT_* environment variables.
// A missing default config file is not an error; a missing explicit one is.
func initConfig(v *viper.Viper, cfgFile string, log *logger) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "linecount"))
		}
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("LINECOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Infof("no config file found, using defaults and flags")
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	log.Infof("using config file: %s", v.ConfigFileUsed())
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root_dir", ".")
	v.SetDefault("threads", 0)
	v.SetDefault("format", formatTable)
	v.SetDefault("file_wise", false)
	v.SetDefault("directory_wise", false)
	v.SetDefault("gitignore", false)
	v.SetDefault("no_progress", false)
}

// loadOptions reads the effective settings: flag > env > config > default.
func loadOptions(v *viper.Viper) Options {
	return Options{
		RootDir:       v.GetString("root_dir"),
		Extensions:    getList(v, "extensions"),
		Ignore:        getList(v, "ignore"),
		FileWise:      v.GetBool("file_wise"),
		DirectoryWise: v.GetBool("directory_wise"),
		Threads:       v.GetInt("threads"),
		Format:        v.GetString("format"),
		Gitignore:     v.GetBool("gitignore"),
		Clipboard:     v.GetBool("clipboard"),
		PDFFile:       v.GetString("pdf"),
		Interactive:   v.GetBool("interactive"),
		NoProgress:    v.GetBool("no_progress"),
		Verbose:       v.GetBool("verbose"),
	}
}

// getList reads a list setting. Flags and the config file yield lists
// already; an environment variable arrives as one comma separated string.
func getList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
