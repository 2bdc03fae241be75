// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/pkg/types"
)

const (
	defaultHistoryDB      = ".pdf2md/history.db"
	defaultPort           = "8090"
	defaultMaxUploadBytes = 50 << 20
	defaultHTTPTimeout    = 60 * time.Second
)

var logger = slog.Default()

// envKeyReplacer maps nested keys like convert.header to PDF2MD_CONVERT_HEADER.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setLogger(l *slog.Logger) {
	logger = l
	slog.SetDefault(l)
}

func defaultImage() string { return types.DefaultContainerImage }

func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("convert.backend", string(types.BackendNative))
	v.SetDefault("convert.container_image", types.DefaultContainerImage)
	v.SetDefault("convert.frontmatter", true)
	v.SetDefault("history.db", defaultHistoryDB)
	v.SetDefault("serve.port", defaultPort)
	v.SetDefault("serve.max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("http.timeout", defaultHTTPTimeout)
	v.SetDefault("http.user_agent", "pdf2md/"+version)
}

// loadConfig assembles the effective configuration from defaults, the
// config file, PDF2MD_* environment variables and bound flags.
func loadConfig(v *viper.Viper) types.Config {
	image := v.GetString("convert.container_image")
	if image == "" {
		image = types.DefaultContainerImage
	}
	return types.Config{
		Convert: types.ConversionConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("http.timeout"),
				UserAgent: v.GetString("http.user_agent"),
			},
			Backend:        types.ExtractionBackend(v.GetString("convert.backend")),
			Header:         v.GetString("convert.header"),
			OutDir:         v.GetString("convert.out_dir"),
			Frontmatter:    v.GetBool("convert.frontmatter"),
			Force:          v.GetBool("convert.force"),
			Normalize:      v.GetBool("convert.normalize"),
			ContainerImage: image,
		},
		History: types.HistoryConfig{
			DBPath: v.GetString("history.db"),
		},
		Serve: types.ServeConfig{
			Port:           v.GetString("serve.port"),
			MaxUploadBytes: v.GetInt64("serve.max_upload_bytes"),
		},
	}
}
