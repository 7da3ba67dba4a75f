package engine

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// The application name used in windowing, if applicable.
	Name string
	// TOML file holding the renderer options. Written with the defaults
	// when missing and watched for changes while the engine runs. Empty
	// runs with the defaults.
	OptionsPath string
}
