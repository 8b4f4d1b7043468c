package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/evzhukov/lifevault/internal/flagx"
	"github.com/evzhukov/lifevault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "15s"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointURL string         `json:"server_endpoint_url"`
	DatabaseDSN       string         `json:"database_dsn"`
	ForceLocalOnly    bool           `json:"force_local_only"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flags via flagx.JsonConfigFlags; when
// neither is present nothing is loaded. Read and unmarshal errors panic,
// matching the flag loader.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointURL = jc.ServerEndpointURL
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.ForceLocalOnly = jc.ForceLocalOnly
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
}
