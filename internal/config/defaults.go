package config

const (
	defaultEndpoint      = "http://localhost:7880/centralWebservice-service/central/"
	defaultTimeoutMillis = 30000
	defaultDatastream    = "PBCORE"
	defaultAgent         = "reklamefix"
	defaultWorkers       = 1
	maxWorkers           = 32
	defaultStateDir      = "~/.local/share/reklamefix"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DOMS: DOMS{
			Endpoint:   defaultEndpoint,
			TimeoutMS:  defaultTimeoutMillis,
			Datastream: defaultDatastream,
			Agent:      defaultAgent,
		},
		Run: Run{
			Workers: defaultWorkers,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
