package app

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/common"
)

// Setup resolves configuration (defaults -> files -> env -> flags) and builds
// the logger for one invocation. When configFiles is empty, wdkres.toml in the
// working directory is used if present.
func Setup(configFiles []string, flags common.FlagOverrides) (*common.Config, arbor.ILogger, error) {
	if len(configFiles) == 0 {
		configFiles = common.DiscoverConfigFiles(".")
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		return nil, nil, err
	}
	common.ApplyFlagOverrides(config, flags)

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	logger := common.InitLogger(config).WithCorrelationId(common.NewInvocationID())

	logger.Debug().
		Strs("config_files", configFiles).
		Str("manifest", config.Manifest.Path).
		Str("descriptor", config.Descriptor.Path).
		Str("log_level", config.Logging.Level).
		Msg("Resolved configuration")

	return config, logger, nil
}
