package cfgloader

import (
	"encoding/json"
	"log/slog"

	"github.com/rise-and-shine/invoker/mask"
)

// printConfig logs the config with fields tagged `mask:"true"` hidden.
func printConfig(config any) {
	out, err := json.MarshalIndent(mask.StructToOrdMap(config), "", "  ")
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info("[cfgloader]: loaded config:\n" + string(out))
}
